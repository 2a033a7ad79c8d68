package device

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SeedEntry is one device definition in the seed inventory file.
type SeedEntry struct {
	ID          string     `yaml:"id"`
	Name        string     `yaml:"name"`
	Type        string     `yaml:"type"`
	Room        string     `yaml:"room"`
	Status      bool       `yaml:"status"`
	Value       *int       `yaml:"value"`
	Temperature *int       `yaml:"temperature"`
	MinTemp     *int       `yaml:"min_temp"`
	MaxTemp     *int       `yaml:"max_temp"`
	Mode        string     `yaml:"mode"`
	Schedules   []Schedule `yaml:"schedules"`
}

// seedFile is the top-level structure of the seed YAML.
type seedFile struct {
	Devices []SeedEntry `yaml:"devices"`
}

// LoadSeed reads the device inventory from a YAML file.
func LoadSeed(path string) ([]*Device, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading seed file: %w", err)
	}

	var file seedFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing seed file: %w", err)
	}

	devices := make([]*Device, 0, len(file.Devices))
	for i, entry := range file.Devices {
		d := &Device{
			ID:          entry.ID,
			Name:        entry.Name,
			Type:        Type(entry.Type),
			Room:        entry.Room,
			Status:      entry.Status,
			Value:       entry.Value,
			Temperature: entry.Temperature,
			MinTemp:     entry.MinTemp,
			MaxTemp:     entry.MaxTemp,
			Mode:        entry.Mode,
			Schedules:   entry.Schedules,
			SortOrder:   i,
		}
		if err := d.Validate(); err != nil {
			return nil, fmt.Errorf("seed entry %d (%s): %w", i, entry.Name, err)
		}
		devices = append(devices, d)
	}

	return devices, nil
}

// Seed populates the directory from the seed list if, and only if, the
// directory is empty. Subsequent boots keep the persisted state.
func (dir *Directory) Seed(ctx context.Context, devices []*Device) (int, error) {
	if dir.Count() > 0 {
		return 0, nil
	}

	created := 0
	for _, d := range devices {
		if _, err := dir.Create(ctx, d); err != nil {
			return created, fmt.Errorf("seeding device %s: %w", d.Name, err)
		}
		created++
	}

	return created, nil
}
