package cli

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/OntriDS/thegame-sub002/internal/calculator"
	"github.com/OntriDS/thegame-sub002/internal/models"
)

// loadInput reads a settlement input from a YAML file.
func loadInput(path string) (calculator.Input, error) {
	var in calculator.Input
	if err := decodeYAMLFile(path, &in); err != nil {
		return in, err
	}
	if in.Contract != nil {
		in.Contract.Normalize()
	}
	return in, nil
}

// loadContract reads a contract from a YAML file.
func loadContract(path string) (*models.Contract, error) {
	contract := &models.Contract{}
	if err := decodeYAMLFile(path, contract); err != nil {
		return nil, err
	}
	contract.Normalize()
	return contract, nil
}

func decodeYAMLFile(path string, out any) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}
