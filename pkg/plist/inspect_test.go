package plist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/macappbundler/pkg/errors"
	"github.com/arthur-debert/macappbundler/pkg/filesystem"
)

const samplePlist = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
  <key>CFBundleName</key>
  <string>Foo</string>
  <key>CFBundleExecutable</key>
  <string>JavaLauncher</string>
  <key>NSHighResolutionCapable</key>
  <true/>
  <key>JVMOptions</key>
  <array>
    <string>-Xmx1g</string>
  </array>
</dict>
</plist>
`

func TestParse(t *testing.T) {
	doc, err := Parse([]byte(samplePlist))
	require.NoError(t, err)
	require.Len(t, doc.Entries, 4)

	name, ok := doc.Get("CFBundleName")
	assert.True(t, ok)
	assert.Equal(t, "Foo", name)

	hiRes, ok := doc.Get("NSHighResolutionCapable")
	assert.True(t, ok)
	assert.Equal(t, "true", hiRes)

	assert.Equal(t, "array", doc.Entries[3].Type)

	_, ok = doc.Get("CFBundleIconFile")
	assert.False(t, ok)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not xml", "<<plist>"},
		{"no plist root", "<dict/>"},
		{"no dict", "<plist version=\"1.0\"><array/></plist>"},
		{"dangling key", "<plist><dict><key>A</key></dict></plist>"},
		{"value without key", "<plist><dict><string>A</string><string>B</string></dict></plist>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrPlistInvalid))
		})
	}
}

func TestInspect(t *testing.T) {
	fs := filesystem.NewMemFS()
	require.NoError(t, fs.MkdirAll("/Foo.app/Contents", 0755))
	require.NoError(t, fs.WriteFile("/Foo.app/Contents/Info.plist", []byte(samplePlist), 0644))

	doc, err := Inspect(fs, "/Foo.app/Contents/Info.plist")
	require.NoError(t, err)
	exe, _ := doc.Get("CFBundleExecutable")
	assert.Equal(t, "JavaLauncher", exe)

	_, err = Inspect(fs, "/Bar.app/Contents/Info.plist")
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileNotFound))
}
