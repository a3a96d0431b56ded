package config

// Manifest is the structure of the mason.yaml file: build settings plus a
// universe of already-resolved targets. It deliberately carries resolved
// data only; evaluating a build language to produce it is someone else's
// job.
type Manifest struct {
	Version  string                `yaml:"version"`
	Root     string                `yaml:"root"`
	BuildDir string                `yaml:"build_dir"`
	Configs  map[string]*ConfigDTO `yaml:"configs"`
	Targets  map[string]*TargetDTO `yaml:"targets"`
}

// ConfigDTO is a named config in the manifest.
type ConfigDTO struct {
	IncludeDirs []string `yaml:"include_dirs"`
}

// TargetDTO is one resolved target in the manifest. Public being absent
// (as opposed to present and empty) means every header of the target is
// public by default.
type TargetDTO struct {
	Kind                      string   `yaml:"kind"`
	Sources                   []string `yaml:"sources"`
	Public                    []string `yaml:"public"`
	Deps                      []string `yaml:"deps"`
	PublicDeps                []string `yaml:"public_deps"`
	Friends                   []string `yaml:"friends"`
	AllowCircularIncludesFrom []string `yaml:"allow_circular_includes_from"`
	IncludeDirs               []string `yaml:"include_dirs"`
	Configs                   []string `yaml:"configs"`
	CheckIncludes             *bool    `yaml:"check_includes"`
	Outputs                   []string `yaml:"outputs"`
	BridgeHeader              string   `yaml:"bridge_header"`
	GeneratedHeaders          []string `yaml:"generated_headers"`
}
