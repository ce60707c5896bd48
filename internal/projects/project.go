// Package projects keeps the list of Unity projects managed by the shell.
package projects

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound    = errors.New("project not found")
	ErrDuplicate   = errors.New("project already added")
	ErrInvalidPath = errors.New("project path must not be empty")
	ErrInvalidType = errors.New("unknown project type")
)

// Type is the kind of Unity project, as recorded by the VRChat Creator Companion.
type Type int

const (
	TypeUnknown Type = iota
	TypeLegacySDK2
	TypeLegacyWorlds
	TypeLegacyAvatars
	TypeUPMWorlds
	TypeUPMAvatars
	TypeUPMStarter
	TypeWorlds
	TypeAvatars
	TypeVPMStarter
)

var typeNames = map[Type]string{
	TypeUnknown:       "Unknown",
	TypeLegacySDK2:    "Legacy SDK2",
	TypeLegacyWorlds:  "Legacy Worlds",
	TypeLegacyAvatars: "Legacy Avatars",
	TypeUPMWorlds:     "UPM Worlds",
	TypeUPMAvatars:    "UPM Avatars",
	TypeUPMStarter:    "UPM Starter",
	TypeWorlds:        "Worlds",
	TypeAvatars:       "Avatars",
	TypeVPMStarter:    "VPM Starter",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Unexpected(%d)", int(t))
}

// Valid reports whether t is one of the defined project types.
func (t Type) Valid() bool {
	return t >= TypeUnknown && t <= TypeVPMStarter
}

// Types lists the known project types in display order.
func Types() []Type {
	return []Type{
		TypeUnknown, TypeWorlds, TypeAvatars, TypeVPMStarter,
		TypeUPMWorlds, TypeUPMAvatars, TypeUPMStarter,
		TypeLegacyWorlds, TypeLegacyAvatars, TypeLegacySDK2,
	}
}

// Project is a Unity project registered with the shell.
type Project struct {
	ID           uuid.UUID
	Path         string
	UnityVersion string
	Type         Type
	Favorite     bool
	CreatedAt    time.Time
	LastModified time.Time
}

// Name is the last element of the project path. Both separators are
// accepted so Windows paths display correctly on any host.
func (p Project) Name() string {
	path := strings.TrimRight(p.Path, `/\`)
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		return path[i+1:]
	}
	return path
}

// UnityVersionOrUnknown is the Unity version for display.
func (p Project) UnityVersionOrUnknown() string {
	if p.UnityVersion == "" {
		return "unknown"
	}
	return p.UnityVersion
}

// DetectUnityVersion reads the editor version from
// ProjectSettings/ProjectVersion.txt. It returns "" when the file is missing
// or has no m_EditorVersion line.
func DetectUnityVersion(dir string) (string, error) {
	f, err := os.Open(filepath.Join(dir, "ProjectSettings", "ProjectVersion.txt"))
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("open project version: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		key, value, ok := strings.Cut(scanner.Text(), ":")
		if ok && strings.TrimSpace(key) == "m_EditorVersion" {
			return strings.TrimSpace(value), nil
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("read project version: %w", err)
	}
	return "", nil
}
