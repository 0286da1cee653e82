package scene

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/df07/go-pathtracer/pkg/core"
)

// ErrUnknownScene is returned by Create for names that are neither built in nor a scene file
var ErrUnknownScene = errors.New("unknown scene")

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Name passed to Create
	DisplayName string `json:"displayName"` // Human readable name
	Description string `json:"description"` // Optional description
	Type        string `json:"type"`        // "builtin" or "json"
	FilePath    string `json:"filePath"`    // Path to scene file (json type only)
}

type builtinScene struct {
	info   SceneInfo
	create func(sampler core.Sampler) *Scene
}

var builtinScenes = []builtinScene{
	{
		info: SceneInfo{
			ID:          "three-spheres",
			DisplayName: "Three Spheres",
			Description: "Diffuse, hollow glass and gold spheres with strong depth of field",
			Type:        "builtin",
		},
		create: func(core.Sampler) *Scene { return NewThreeSpheresScene() },
	},
	{
		info: SceneInfo{
			ID:          "random",
			DisplayName: "Random Spheres",
			Description: "Field of random small spheres around three large ones",
			Type:        "builtin",
		},
		create: NewRandomScene,
	},
	{
		info: SceneInfo{
			ID:          "hollow-glass",
			DisplayName: "Hollow Glass",
			Description: "Metal, glass and a hollow glass shell on a green ground",
			Type:        "builtin",
		},
		create: func(core.Sampler) *Scene { return NewHollowGlassScene() },
	},
}

// Names returns the IDs of the built-in scenes, default first
func Names() []string {
	names := make([]string, len(builtinScenes))
	for i, b := range builtinScenes {
		names[i] = b.info.ID
	}
	return names
}

// BuiltinScenes returns metadata for the built-in scenes
func BuiltinScenes() []SceneInfo {
	infos := make([]SceneInfo, len(builtinScenes))
	for i, b := range builtinScenes {
		infos[i] = b.info
	}
	return infos
}

// Create builds a built-in scene by ID, or loads a scene file when name ends in .json.
// sampler drives any randomness in scene construction.
func Create(name string, sampler core.Sampler) (*Scene, error) {
	if strings.EqualFold(filepath.Ext(name), ".json") {
		return LoadJSON(name)
	}
	for _, b := range builtinScenes {
		if b.info.ID == name {
			return b.create(sampler), nil
		}
	}
	return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownScene, name, strings.Join(Names(), ", "))
}

// ListJSONScenes scans dir for *.json scene files. A missing directory yields no scenes;
// unreadable files are logged and skipped.
func ListJSONScenes(dir string, logger *slog.Logger) ([]SceneInfo, error) {
	logger = core.LoggerOrNop(logger)

	if _, err := os.Stat(dir); err != nil {
		return []SceneInfo{}, nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	var scenes []SceneInfo
	for _, filePath := range files {
		sceneInfo, err := ParseJSONMetadata(filePath)
		if err != nil {
			logger.Warn("failed to parse scene metadata", "file", filePath, "error", err)
			continue
		}
		scenes = append(scenes, sceneInfo)
	}

	// Sort scenes by display name
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})

	return scenes, nil
}

// ParseJSONMetadata reads the name and description of a scene file
// without building the scene.
func ParseJSONMetadata(filePath string) (SceneInfo, error) {
	nameWithoutExt := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))

	sceneInfo := SceneInfo{
		ID:          filePath,
		DisplayName: titleCase(nameWithoutExt),
		Type:        "json",
		FilePath:    filePath,
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return sceneInfo, err
	}

	var header struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := json.Unmarshal(data, &header); err != nil {
		return sceneInfo, fmt.Errorf("invalid scene file: %w", err)
	}

	if header.Name != "" {
		sceneInfo.DisplayName = header.Name
	}
	sceneInfo.Description = header.Description

	return sceneInfo, nil
}

// titleCase converts a filename-style string to title case
// e.g., "glass-row" -> "Glass Row"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}

	return strings.Join(words, " ")
}
