// Package paths maps archive-relative file paths to the logical paths the
// engine mounts them under.
//
// Archive paths are slash separated and relative ("Game/Content/Maps/Main").
// Logical paths are rooted at a mount point ("/Game/Maps/Main").
package paths

import "strings"

// Package file extensions that carry a registry entry.
var packageExts = []string{".uasset", ".umap"}

// TrimPackageExt strips a package extension from p. ok is false when p does
// not end in one, in which case p is returned unchanged.
func TrimPackageExt(p string) (string, bool) {
	for _, ext := range packageExts {
		if trimmed, found := strings.CutSuffix(p, ext); found {
			return trimmed, true
		}
	}
	return p, false
}

// PakToGamePath maps an archive path to its logical path:
//
//	Engine/Content/X                      -> /Engine/X
//	Engine/Plugins/.../<Plugin>/Content/X -> /<Plugin>/X
//	<Project>/Content/X                   -> /Game/X
//
// Any other shape, including absolute paths and paths containing "..",
// is not mapped.
func PakToGamePath(p string) (string, bool) {
	if strings.HasPrefix(p, "/") {
		return "", false
	}
	parts := split(p)
	if len(parts) < 2 {
		return "", false
	}
	for _, c := range parts {
		if c == ".." {
			return "", false
		}
	}

	if parts[0] == "Engine" {
		switch parts[1] {
		case "Content":
			return join("/Engine", parts[2:]), true
		case "Plugins":
			// The plugin name is the component right before the first Content.
			for i := 2; i < len(parts); i++ {
				if parts[i] != "Content" {
					continue
				}
				if i == 2 {
					break
				}
				return join("/"+parts[i-1], parts[i+1:]), true
			}
		}
		return "", false
	}
	if parts[1] == "Content" {
		return join("/Game", parts[2:]), true
	}
	return "", false
}

// Parent returns the directory portion of a slash-separated path. ok is
// false for the empty path and for a bare root, which have no parent. A
// single relative component has the empty parent.
func Parent(p string) (string, bool) {
	trimmed := strings.TrimRight(p, "/")
	if trimmed == "" {
		return "", false
	}
	i := strings.LastIndexByte(trimmed, '/')
	if i < 0 {
		return "", true
	}
	dir := strings.TrimRight(trimmed[:i], "/")
	if dir == "" {
		return "/", true
	}
	return dir, true
}

func split(p string) []string {
	raw := strings.Split(p, "/")
	parts := raw[:0]
	for _, c := range raw {
		if c == "" || c == "." {
			continue
		}
		parts = append(parts, c)
	}
	return parts
}

func join(root string, rest []string) string {
	if len(rest) == 0 {
		return root
	}
	return root + "/" + strings.Join(rest, "/")
}
