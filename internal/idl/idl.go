// Package idl probes the generator's input IDL document.
//
// The probe classifies the document into one of the two generator output
// conventions. A missing or malformed document degrades to an unknown
// classification so downstream checks can still run.
package idl

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/solweave/idlvet/internal/logging"
)

// DefaultFilename is the IDL document name expected at the project root.
const DefaultFilename = "idl.json"

// anchorDescriptionSuffix marks IDLs emitted by the Anchor toolchain.
const anchorDescriptionSuffix = "Created with Anchor"

// anchorDiscriminatorLen is the discriminator length Anchor assigns to
// instructions.
const anchorDiscriminatorLen = 8

// Kind is the generator output convention an IDL selects.
type Kind string

const (
	KindAnchor    Kind = "anchor"
	KindNonAnchor Kind = "non_anchor"
	KindUnknown   Kind = "unknown"
)

// Document holds the probed facts the validators condition on.
type Document struct {
	Kind        Kind
	HasAccounts bool
	ProgramName string
}

// rawIDL mirrors just the IDL fields the probe reads.
type rawIDL struct {
	Metadata struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	} `json:"metadata"`
	Instructions []struct {
		Discriminator []int `json:"discriminator"`
	} `json:"instructions"`
	Accounts []json.RawMessage `json:"accounts"`
}

// Probe reads IDL documents.
type Probe struct {
	filename string
	logger   logging.Logger
}

// NewProbe creates a Probe reading the given filename at each project root.
// An empty filename selects DefaultFilename.
func NewProbe(filename string, logger logging.Logger) *Probe {
	if filename == "" {
		filename = DefaultFilename
	}
	if logger == nil {
		logger = logging.NewSilent()
	}
	return &Probe{filename: filename, logger: logger}
}

// Inspect reads and classifies the IDL document under projectPath. Missing
// or unparsable input yields the permissive unknown document.
func (p *Probe) Inspect(projectPath string) Document {
	unknown := Document{Kind: KindUnknown, ProgramName: "unknown"}

	path := filepath.Join(projectPath, p.filename)
	data, err := os.ReadFile(path)
	if err != nil {
		p.logger.Warn("IDL document unreadable, degrading to unknown",
			logging.F("path", path),
			logging.F("error", err))
		return unknown
	}

	var raw rawIDL
	if err := json.Unmarshal(data, &raw); err != nil {
		p.logger.Warn("IDL document unparsable, degrading to unknown",
			logging.F("path", path),
			logging.F("error", err))
		return unknown
	}

	doc := Document{
		Kind:        KindNonAnchor,
		HasAccounts: len(raw.Accounts) > 0,
		ProgramName: raw.Metadata.Name,
	}
	if doc.ProgramName == "" {
		doc.ProgramName = "unknown"
	}

	if strings.HasSuffix(raw.Metadata.Description, anchorDescriptionSuffix) {
		doc.Kind = KindAnchor
	} else if len(raw.Instructions) > 0 &&
		len(raw.Instructions[0].Discriminator) == anchorDiscriminatorLen {
		doc.Kind = KindAnchor
	}

	return doc
}
