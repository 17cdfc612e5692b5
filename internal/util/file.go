package util

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/natefinch/atomic"
	"golang.org/x/sys/unix"
)

// CheckFilePermissionsForExecution checks whether the given filePath owner, group and permissions
// are safe to use this file for execution by pidfan.
func CheckFilePermissionsForExecution(filePath string) (bool, error) {
	file, err := filepath.EvalSymlinks(filePath)
	if err != nil {
		return false, err
	}

	var stat unix.Stat_t
	if err := unix.Stat(file, &stat); err != nil {
		if errors.Is(err, unix.ENOENT) {
			return false, errors.New("file not found")
		}
		return false, err
	}

	if stat.Uid != 0 {
		return false, errors.New("owner is not root")
	}

	mode := os.FileMode(stat.Mode).Perm()
	if stat.Gid != 0 && mode&0o020 != 0 {
		return false, errors.New("group is not root but has write permission")
	}

	if mode&0o002 != 0 {
		return false, errors.New("others have write permission")
	}

	return true, nil
}

// ExpandPath resolves a leading "~" to the home directory of the current user
func ExpandPath(path string) (string, error) {
	return homedir.Expand(path)
}

// ReadFloatFromFile reads a single number from a sysfs-style file
func ReadFloatFromFile(path string) (float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	text := strings.TrimSpace(string(data))
	if len(text) <= 0 {
		return 0, fmt.Errorf("file is empty: %s", path)
	}
	return ParseFiniteFloat(text)
}

// ParseFiniteFloat parses a number, rejecting NaN and infinite values
func ParseFiniteFloat(text string) (float64, error) {
	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("not a finite number: %q", text)
	}
	return value, nil
}

// ReadIntFromFile reads a single integer from a sysfs-style file
func ReadIntFromFile(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return -1, err
	}
	text := strings.TrimSpace(string(data))
	if len(text) <= 0 {
		return -1, fmt.Errorf("file is empty: %s", path)
	}
	return strconv.Atoi(text)
}

// WriteIntToFile write a single integer to a file path.
// sysfs attributes cannot be replaced by a rename, so this writes in place.
func WriteIntToFile(value int, path string) error {
	evaluatedPath, err := filepath.EvalSymlinks(path)
	if len(evaluatedPath) > 0 && err == nil {
		path = evaluatedPath
	}
	return os.WriteFile(path, []byte(strconv.Itoa(value)), 0644)
}

// WriteFileAtomic replaces the content of path with the content of r,
// readers never observe a partially written file.
func WriteFileAtomic(path string, r io.Reader) error {
	return atomic.WriteFile(path, r)
}
