package login

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {

	assert := assert.New(t)

	assert.NoError(Credentials{Email: "ana@caec.io", Password: "x"}.Validate())
	assert.ErrorIs(Credentials{Email: "", Password: "x"}.Validate(), ErrMissingFields)
	assert.ErrorIs(Credentials{Email: "ana@caec.io"}.Validate(), ErrMissingFields)
	assert.ErrorIs(Credentials{Email: "ana@caec", Password: "x"}.Validate(), ErrInvalidEmail)
	assert.ErrorIs(Credentials{Email: "ana caec@x.io", Password: "x"}.Validate(), ErrInvalidEmail)
	assert.ErrorIs(Credentials{Email: "@x.io", Password: "x"}.Validate(), ErrInvalidEmail)
}

func TestAuthenticate(t *testing.T) {

	assert := assert.New(t)

	// server mode accepts anything
	r := Authenticate(MODE_SERVER, Credentials{Email: "whatever"})
	assert.NoError(r.Error)
	assert.True(r.CreateSession)
	assert.Equal(DASHBOARD_ROUTE, r.Redirect)
	assert.Equal("whatever", r.User)

	r = Authenticate(MODE_LOCAL, Credentials{Email: "ana@caec.io", Password: "secret"})
	assert.NoError(r.Error)
	assert.False(r.CreateSession)
	assert.Equal(DASHBOARD_ROUTE, r.Redirect)

	r = Authenticate(MODE_LOCAL, Credentials{Email: "ana", Password: "secret"})
	assert.ErrorIs(r.Error, ErrInvalidEmail)
	assert.Empty(r.Redirect)
}

func TestRememberedEmail(t *testing.T) {
	assert.Equal(t, "ana@caec.io", RememberedEmail(Credentials{Email: "ana@caec.io", Remember: true}))
	assert.Equal(t, "", RememberedEmail(Credentials{Email: "ana@caec.io"}))
}

func TestSyncSteps(t *testing.T) {

	assert := assert.New(t)

	steps := SyncSteps()
	assert.Len(steps, 4)
	assert.Equal("loginStep1", steps[0].Id)
	assert.Equal(800*time.Millisecond, steps[1].Duration)
	assert.Equal(3*time.Second, SyncDuration())
}

func TestParseMode(t *testing.T) {

	assert := assert.New(t)

	m, err := ParseMode("")
	assert.NoError(err)
	assert.Equal(MODE_SERVER, m)
	m, err = ParseMode("local")
	assert.NoError(err)
	assert.Equal(MODE_LOCAL, m)
	_, err = ParseMode("oauth")
	assert.Error(err)
}
