package emailblocks

import "github.com/google/uuid"

// IDGenerator produces opaque unique block identifiers
type IDGenerator interface {
	NewID() string
}

// UUIDGenerator issues random UUIDs
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string {
	return uuid.New().String()
}

// IDGeneratorFunc adapts a function to IDGenerator
type IDGeneratorFunc func() string

func (f IDGeneratorFunc) NewID() string {
	return f()
}
