package program

import "fmt"

// Kind names one of the supported activity programs.
type Kind string

const (
	Walking Kind = "walking"
	Running Kind = "running"
)

// Config is everything that distinguishes one program from another.
type Config struct {
	TableName string
}

var (
	// Do not rename these or new sheets will be created
	programs = map[Kind]Config{
		Walking: {TableName: "Walking Program"},
		Running: {TableName: "Running Program"},
	}
)

// Lookup resolves a program kind as supplied by the user.
func Lookup(kind string) (Config, error) {
	cfg, ok := programs[Kind(kind)]
	if !ok {
		return Config{}, fmt.Errorf("unknown program kind: %s", kind)
	}
	return cfg, nil
}
