package config

// RootOptions holds the identity of the root folder every tree starts from.
type RootOptions struct {
	RootName string // root folder name
	RootID   uint64 // root folder id
}
