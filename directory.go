package argbind

import (
	"reflect"
)

var (
	fileSystemEntryType = reflect.TypeOf((*FileSystemEntry)(nil)).Elem()
	directoryEntryType  = reflect.TypeOf(DirectoryEntry{})
	fileEntryType       = reflect.TypeOf(FileEntry{})
)

// directoryConverter resolves values flagged ExistingDirectory.
// Once the flag is set a missing directory is fatal, never a decline.
type directoryConverter struct {
	fs  FileSystem
	env Environment
}

func (c *directoryConverter) Kind() ConverterKind { return KindExistingDirectory }

func (c *directoryConverter) TryConvert(value string, target TargetType, flags ArgumentFlags) (Result, error) {
	if !flags.Has(ExistingDirectory) {
		return Unsuccessful, nil
	}

	path, err := c.fs.MakePathFullyQualified(c.env.ExpandEnvironmentVariables(value))
	if err != nil {
		return Unsuccessful, parseErrorf(err, "cannot resolve directory %q", value)
	}
	if !c.fs.DirectoryExists(path) {
		return Unsuccessful, parseErrorf(nil, "directory not found: %s", path)
	}

	scalar := target.Scalar()
	if target.IsVector() {
		var keep func(FileSystemEntry) bool
		switch scalar {
		case fileSystemEntryType:
			keep = func(FileSystemEntry) bool { return true }
		case directoryEntryType:
			keep = func(e FileSystemEntry) bool { return e.IsDir() }
		case fileEntryType:
			keep = func(e FileSystemEntry) bool { return !e.IsDir() }
		default:
			return Unsuccessful, incompatibleTarget(target, ExistingDirectory)
		}

		entries, err := c.fs.FileSystemEntries(path)
		if err != nil {
			return Unsuccessful, parseErrorf(err, "cannot list directory %s", path)
		}
		values := make([]reflect.Value, 0, len(entries))
		for _, e := range entries {
			if keep(e) {
				values = append(values, boxAs(e, scalar))
			}
		}
		return Successful(values...), nil
	}

	switch {
	case scalar == stringType:
		return Successful(reflect.ValueOf(path)), nil
	case directoryEntryType.AssignableTo(scalar):
		return Successful(boxAs(NewDirectoryEntry(path), scalar)), nil
	}
	return Unsuccessful, incompatibleTarget(target, ExistingDirectory)
}

func incompatibleTarget(target TargetType, flag ArgumentFlags) *ParseError {
	return parseErrorf(nil, "type %s is not compatible with argument flag %s", target, flag)
}
