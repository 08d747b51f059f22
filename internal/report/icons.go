package report

import (
	"os"
	"path"
	"time"

	devicons "github.com/epilande/go-devicons"
)

// iconFileInfo lets devicons pick an icon from a staged path without
// touching the file system; staged files may no longer exist on disk.
type iconFileInfo struct {
	name string
}

func (i iconFileInfo) Name() string { return i.name }

func (i iconFileInfo) Size() int64 { return 0 }

func (i iconFileInfo) Mode() os.FileMode { return 0 }

func (i iconFileInfo) ModTime() time.Time { return time.Time{} }

func (i iconFileInfo) IsDir() bool { return false }

func (i iconFileInfo) Sys() any { return nil }

func deviconForPath(p string) string {
	if p == "" {
		return ""
	}
	return devicons.IconForInfo(iconFileInfo{name: path.Base(p)}).Icon
}
