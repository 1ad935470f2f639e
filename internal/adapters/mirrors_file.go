package adapters

import (
	"os"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"
)

type mirrorsFile struct {
	OfficialMirrors []string `yaml:"official_mirrors"`
}

// LoadMirrorsFile reads an official-mirror override list:
//
//	official_mirrors:
//	  - mirror.example.edu
//	  - .mirrors.example.net
//
// Hosts starting with a dot are treated as suffix patterns.
func LoadMirrorsFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to read mirrors file").
			WithCause(err)
	}
	var parsed mirrorsFile
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse mirrors file").
			WithCause(err)
	}
	return parsed.OfficialMirrors, nil
}
