package locale

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_ResolvesLocale(t *testing.T) {
	catalog, err := NewCatalog("en")
	require.NoError(t, err)
	assert.Len(t, catalog.Languages(), 2)

	t.Run("user locale wins", func(t *testing.T) {
		p := catalog.Printer("de", "en-US")
		assert.Equal(t, "💰 Dein Kontostand: **42** Coins", p.T(MsgBalance, Data{"Balance": 42}))
	})

	t.Run("regional variant falls back to base language", func(t *testing.T) {
		p := catalog.Printer("en-GB")
		assert.Equal(t, "💰 Your balance: **42** coins", p.T(MsgBalance, Data{"Balance": 42}))
	})

	t.Run("unsupported locale falls back to guild locale", func(t *testing.T) {
		p := catalog.Printer("ja", "de")
		assert.Equal(t, "Keine Gewinner", p.T(MsgNoWinners, nil))
	})

	t.Run("default locale last", func(t *testing.T) {
		p := catalog.Printer("ja")
		assert.Equal(t, "No winners", p.T(MsgNoWinners, nil))
	})

	t.Run("plural", func(t *testing.T) {
		p := catalog.Printer("de")
		assert.Equal(t, "… und 3 weitere", p.Plural(MsgMore, 3))
	})

	t.Run("missing message renders its id", func(t *testing.T) {
		p := catalog.Printer("en")
		assert.Equal(t, "DoesNotExist", p.T("DoesNotExist", nil))
	})
}

func TestCatalog_DefaultLocale(t *testing.T) {
	catalog, err := NewCatalog("de")
	require.NoError(t, err)
	assert.Equal(t, "pong 🏓", catalog.Printer().T(MsgPong, nil))
	assert.Equal(t, "Keine Gewinner", catalog.Printer("").T(MsgNoWinners, nil))

	_, err = NewCatalog("not a locale!")
	assert.Error(t, err)
}
