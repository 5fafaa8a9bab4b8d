package device

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const chromeUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

func TestClassifyDesktopBrowser(t *testing.T) {
	info := NewClassifier().Classify(chromeUA)
	require.Equal(t, "Chrome", info.Browser)
	require.Equal(t, "Windows", info.OS)
	require.NotEqual(t, UnknownDevice, info.Model)
}

func TestClassifyEmptyFallsBack(t *testing.T) {
	info := NewClassifier().Classify("")
	require.Equal(t, UnknownDevice, info.Model)
	require.Equal(t, UnknownBrowser, info.Browser)
	require.Equal(t, UnknownOS, info.OS)
}

func TestClassifyGarbageFallsBack(t *testing.T) {
	info := NewClassifier().Classify("%%%not-a-user-agent%%%")
	require.Equal(t, UnknownBrowser, info.Browser)
	require.Equal(t, UnknownOS, info.OS)
}
