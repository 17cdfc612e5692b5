package hwmon

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/md14454/gosensors"
)

const (
	BusTypeIsa  = 1
	BusTypePci  = 2
	BusTypeAcpi = 5
)

var platformRegex = regexp.MustCompile(`/platform/([^/]+)/`)

// Controller is a chip detected by lm-sensors which exposes temperature inputs
type Controller struct {
	Name     string
	Platform string
	Path     string

	TempInputs []TempInput
}

type TempInput struct {
	// Index is 1-based and counts only temperature features of the chip
	Index int
	Label string
	Input string
	Value float64
}

// GetChips returns all chips detected by lm-sensors that have at least one temperature input
func GetChips() []*Controller {
	gosensors.Init()
	defer gosensors.Cleanup()
	chips := gosensors.GetDetectedChips()

	var list []*Controller
	for i := 0; i < len(chips); i++ {
		chip := chips[i]

		identifier := computeIdentifier(chip)
		platform := findPlatform(chip.Path)
		if len(platform) <= 0 {
			platform = identifier
		}

		inputs := getTempInputs(chip)
		if len(inputs) <= 0 {
			continue
		}

		list = append(list, &Controller{
			Name:       identifier,
			Platform:   platform,
			Path:       chip.Path,
			TempInputs: inputs,
		})
	}

	return list
}

// FindTempInput resolves the sysfs path of the index-th temperature input
// of the first chip whose platform matches the given (case insensitive) regex
func FindTempInput(platform string, index int) (string, error) {
	return findTempInput(GetChips(), platform, index)
}

func findTempInput(controllers []*Controller, platform string, index int) (string, error) {
	expr, err := regexp.Compile("(?i)" + platform)
	if err != nil {
		return "", fmt.Errorf("invalid platform regex '%s': %w", platform, err)
	}

	for _, c := range controllers {
		if !expr.MatchString(c.Platform) {
			continue
		}
		for _, input := range c.TempInputs {
			if input.Index == index {
				return input.Input, nil
			}
		}
		return "", fmt.Errorf("hwmon device '%s' has no temperature input with index %d", c.Platform, index)
	}

	return "", fmt.Errorf("couldn't find hwmon device with platform '%s'", platform)
}

func getTempInputs(chip gosensors.Chip) []TempInput {
	var result []TempInput

	features := chip.GetFeatures()
	for j := 0; j < len(features); j++ {
		feature := features[j]
		if feature.Type != gosensors.FeatureTypeTemp {
			continue
		}

		for _, subFeature := range feature.GetSubFeatures() {
			if subFeature.Type != gosensors.SubFeatureTypeTempInput {
				continue
			}
			result = append(result, TempInput{
				Index: len(result) + 1,
				Label: getLabel(chip.Path, subFeature.Name),
				Input: filepath.Join(chip.Path, subFeature.Name),
				Value: subFeature.GetValue(),
			})
			break
		}
	}

	return result
}

// getLabel read the label of a in/output of a device
func getLabel(devicePath string, input string) string {
	labelPath := strings.TrimSuffix(filepath.Join(devicePath, input), "input") + "label"

	content, _ := os.ReadFile(labelPath)
	label := strings.TrimSpace(string(content))
	if len(label) <= 0 {
		label = input
	}
	return label
}

func computeIdentifier(chip gosensors.Chip) (name string) {
	name = chip.Prefix

	if len(name) <= 0 {
		content, _ := os.ReadFile(filepath.Join(chip.Path, "name"))
		name = strings.TrimSpace(string(content))
	}
	if len(name) <= 0 {
		_, name = filepath.Split(chip.Path)
	}

	identifier := name
	switch chip.Bus.Type {
	case BusTypeIsa:
		identifier = fmt.Sprintf("%s-isa-%d%03x", identifier, chip.Bus.Nr, chip.Addr)
	case BusTypePci:
		identifier = fmt.Sprintf("%s-pci-%d%03x", identifier, chip.Bus.Nr, chip.Addr)
	case BusTypeAcpi:
		identifier = fmt.Sprintf("%s-acpi-%d", identifier, chip.Bus.Nr)
	}

	return identifier
}

func findPlatform(devicePath string) string {
	match := platformRegex.FindStringSubmatch(devicePath)
	if len(match) < 2 {
		return ""
	}
	return match[1]
}
