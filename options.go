package authturso

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

type Options struct {
	// Logger receives a debug line per executed statement. Discarded when
	// left unset.
	Logger *log.Logger

	// GenerateID produces ids for rows the store does not autogenerate.
	// Values must be globally unique; defaults to UUIDv4.
	GenerateID func() string
}

func (left Options) withDefaults() Options {

	// Logger
	logger := left.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	// GenerateID
	generateID := left.GenerateID
	if generateID == nil {
		generateID = uuid.NewString
	}

	return Options{
		Logger:     logger,
		GenerateID: generateID,
	}
}
