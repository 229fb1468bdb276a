package model

import "time"

// ClientKind records how the client relationship was sourced.
type ClientKind string

const (
	ClientDirect     ClientKind = "DIRECT"
	ClientUpwork     ClientKind = "UPWORK"
	ClientFreelancer ClientKind = "FREELANCER"
)

type Client struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Kind      ClientKind `json:"kind"`
	CreatedAt time.Time  `json:"created_at"`
}
