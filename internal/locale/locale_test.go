package locale

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestTranslations(t *testing.T) {
	b, err := Bundle()
	require.NoError(t, err)

	en := New(b, "en")
	ceb := New(b, "ceb")
	assert.Equal(t, "Explore", en.T("TabExplore"))
	assert.Equal(t, "Suroy", ceb.T("TabExplore"))
	assert.Equal(t, "Analyzing image...", en.Indexed("IdentifyStep", 0))
	assert.Equal(t, "Nailhan na ang landmark!", ceb.Indexed("IdentifyStep", 3))
	assert.Equal(t, "Permission to access camera was denied", en.Tf("PermissionDenied", map[string]any{"Capability": "camera"}))
}

func TestPlurals(t *testing.T) {
	b, err := Bundle()
	require.NoError(t, err)
	en := New(b, "en")
	assert.Equal(t, "1 landmark", en.Plural("LandmarksFound", 1))
	assert.Equal(t, "3 landmarks", en.Plural("LandmarksFound", 3))
}

func TestMissingMessageFallsBackToID(t *testing.T) {
	b, err := Bundle()
	require.NoError(t, err)
	assert.Equal(t, "NoSuchMessage", New(b, "ceb").T("NoSuchMessage"))
}

func TestMatch(t *testing.T) {
	assert.Equal(t, language.English, Match(""))
	assert.Equal(t, language.English, Match("fr-FR"))
	assert.Equal(t, "ceb", Match("ceb").String())
	assert.Equal(t, "ceb", Match("ceb-PH,en;q=0.5").String())
	assert.Equal(t, language.English, Match("en-US"))
}
