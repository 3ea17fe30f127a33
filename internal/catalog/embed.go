package catalog

import "embed"

// dataFS embeds the default skill graph and trait definitions.
//
//go:embed data/*.yaml
var dataFS embed.FS

// Data file names, shared by the embedded set and directory overrides.
const (
	SkillsFile     = "skills.yaml"
	RacesFile      = "races.yaml"
	BirthsignsFile = "birthsigns.yaml"
	FeatsFile      = "feats.yaml"
)
