package catalog

import (
	"bytes"
	stderrors "errors"
	"io/fs"
	"log/slog"
	"os"
	"path"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/skilltree-api/internal/entities/skilltree"
	"github.com/KirkDiggler/skilltree-api/internal/errors"
)

type skillsFile struct {
	Nodes []skilltree.SkillNode `yaml:"nodes"`
}

type racesFile struct {
	Races []traitSpec `yaml:"races"`
}

type birthsignsFile struct {
	Birthsigns []traitSpec `yaml:"birthsigns"`
}

type featsFile struct {
	Feats []traitSpec `yaml:"feats"`
}

type traitSpec struct {
	ID               string                `yaml:"id"`
	Name             string                `yaml:"name"`
	Description      string                `yaml:"description"`
	Icon             string                `yaml:"icon"`
	Summary          string                `yaml:"summary"`
	Benefits         []string              `yaml:"benefits"`
	Requirements     []string              `yaml:"requirements"`
	AbilityModifiers []abilityModifierSpec `yaml:"ability_modifiers"`
	FreeNodes        []freeNodeSpec        `yaml:"free_nodes"`
	SpecialAbilities []specialAbilitySpec  `yaml:"special_abilities"`
}

type abilityModifierSpec struct {
	Ability  skilltree.AbilityKey `yaml:"ability"`
	Modifier int                  `yaml:"modifier"`
}

type freeNodeSpec struct {
	Node   string `yaml:"node"`
	Points int    `yaml:"points"`
}

type specialAbilitySpec struct {
	ID          string       `yaml:"id"`
	Name        string       `yaml:"name"`
	Description string       `yaml:"description"`
	Effects     []effectSpec `yaml:"effects"`
}

type effectSpec struct {
	Kind   skilltree.EffectKind `yaml:"kind"`
	Stat   skilltree.Stat       `yaml:"stat"`
	Amount int                  `yaml:"amount"`
	Flag   string               `yaml:"flag"`
	Grant  skilltree.GrantKind  `yaml:"grant"`
	Values []string             `yaml:"values"`
}

// Load builds the catalog from the embedded data. When dir is set, any data
// file present in dir replaces its embedded counterpart.
func Load(dir string) (*Catalog, error) {
	embedded, err := fs.Sub(dataFS, "data")
	if err != nil {
		return nil, errors.Wrap(err, "failed to open embedded catalog data")
	}

	if dir == "" {
		return LoadFS(embedded)
	}

	info, err := os.Stat(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read catalog directory %s", dir)
	}
	if !info.IsDir() {
		return nil, errors.InvalidArgumentf("catalog path %s is not a directory", dir)
	}

	return LoadFS(overlayFS{primary: os.DirFS(dir), fallback: embedded})
}

// LoadFS builds the catalog from the four data files in fsys
func LoadFS(fsys fs.FS) (*Catalog, error) {
	var skills skillsFile
	if err := decodeFile(fsys, SkillsFile, &skills); err != nil {
		return nil, err
	}

	var races racesFile
	if err := decodeFile(fsys, RacesFile, &races); err != nil {
		return nil, err
	}

	var birthsigns birthsignsFile
	if err := decodeFile(fsys, BirthsignsFile, &birthsigns); err != nil {
		return nil, err
	}

	var feats featsFile
	if err := decodeFile(fsys, FeatsFile, &feats); err != nil {
		return nil, err
	}

	traits := make([]skilltree.Trait, 0, len(races.Races)+len(birthsigns.Birthsigns)+len(feats.Feats))
	for _, entry := range races.Races {
		traits = append(traits, entry.toTrait(skilltree.TraitKindRace))
	}
	for _, entry := range birthsigns.Birthsigns {
		traits = append(traits, entry.toTrait(skilltree.TraitKindBirthsign))
	}
	for _, entry := range feats.Feats {
		traits = append(traits, entry.toTrait(skilltree.TraitKindFeat))
	}

	for i := range traits {
		for _, ability := range traits[i].Effects.SpecialAbilities {
			for _, effect := range ability.Effects {
				if effect == nil {
					return nil, errors.InvalidArgumentf("special ability %s has an unknown effect kind", ability.ID)
				}
			}
		}
	}

	c, err := New(skills.Nodes, traits)
	if err != nil {
		return nil, err
	}

	slog.Debug("Catalog loaded",
		"nodes", len(c.nodes),
		"races", len(c.traits[skilltree.TraitKindRace]),
		"birthsigns", len(c.traits[skilltree.TraitKindBirthsign]),
		"feats", len(c.traits[skilltree.TraitKindFeat]))

	return c, nil
}

func decodeFile(fsys fs.FS, name string, out any) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return errors.Wrapf(err, "failed to read %s", name)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		return errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to decode "+name)
	}
	return nil
}

func (s traitSpec) toTrait(kind skilltree.TraitKind) skilltree.Trait {
	t := skilltree.Trait{
		ID:           s.ID,
		Kind:         kind,
		Name:         s.Name,
		Description:  s.Description,
		Icon:         s.Icon,
		Benefits:     s.Benefits,
		Requirements: s.Requirements,
		Effects: skilltree.EffectBundle{
			Description: s.Summary,
		},
	}

	for _, m := range s.AbilityModifiers {
		t.Effects.AbilityModifiers = append(t.Effects.AbilityModifiers, skilltree.AbilityModifier{
			Ability:  m.Ability,
			Modifier: m.Modifier,
		})
	}

	for _, g := range s.FreeNodes {
		t.Effects.FreeNodeGrants = append(t.Effects.FreeNodeGrants, skilltree.FreeNodeGrant{
			NodeID: g.Node,
			Points: g.Points,
		})
	}

	source := t.Source()
	for _, sa := range s.SpecialAbilities {
		ability := skilltree.SpecialAbility{
			ID:          sa.ID,
			Name:        sa.Name,
			Description: sa.Description,
			Source:      source,
			Category:    kind.Category(),
		}
		for _, e := range sa.Effects {
			ability.Effects = append(ability.Effects, e.toEffect())
		}
		t.Effects.SpecialAbilities = append(t.Effects.SpecialAbilities, ability)
	}

	return t
}

// toEffect returns nil for an unknown kind
func (e effectSpec) toEffect() skilltree.Effect {
	switch e.Kind {
	case skilltree.EffectKindFlatBonus:
		return skilltree.FlatBonus{Stat: e.Stat, Amount: e.Amount}
	case skilltree.EffectKindConstitutionHP:
		return skilltree.ConstitutionHP{}
	case skilltree.EffectKindFlag:
		return skilltree.Flag{Name: e.Flag}
	case skilltree.EffectKindGrant:
		return skilltree.Grant{Type: e.Grant, Values: e.Values}
	}
	return nil
}

// overlayFS reads from primary and falls back to fallback for missing files
type overlayFS struct {
	primary  fs.FS
	fallback fs.FS
}

func (o overlayFS) Open(name string) (fs.File, error) {
	f, err := o.primary.Open(name)
	if err == nil {
		slog.Info("Using catalog override", "file", path.Base(name))
		return f, nil
	}
	if !stderrors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	return o.fallback.Open(name)
}
