package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateCronSchedule(t *testing.T) {
	for _, ok := range []string{"*/15 * * * *", "0 * * * *", "30 3 * * *", "@hourly", "@every 10m"} {
		assert.NoError(t, ValidateCronSchedule(ok), ok)
	}
	for _, bad := range []string{"", "* * *", "61 * * * *", "0 0 * * * *"} {
		assert.Error(t, ValidateCronSchedule(bad), bad)
	}
}

func TestValidateTimezone(t *testing.T) {
	assert.NoError(t, ValidateTimezone("UTC"))
	assert.Error(t, ValidateTimezone(""))
	assert.Error(t, ValidateTimezone("Mars/Olympus"))
}

func TestValidateDuration(t *testing.T) {
	assert.NoError(t, ValidateDuration(time.Second, time.Second, time.Minute))
	assert.Error(t, ValidateDuration(time.Millisecond, time.Second, time.Minute))
	assert.Error(t, ValidateDuration(time.Hour, time.Second, time.Minute))
	assert.Error(t, ValidateDuration(time.Second, time.Minute, time.Second))
}

func TestValidateIntRange(t *testing.T) {
	assert.NoError(t, ValidateIntRange(0, 0, 10))
	assert.Error(t, ValidateIntRange(-1, 0, 10))
	assert.Error(t, ValidateIntRange(11, 0, 10))
	assert.Error(t, ValidateIntRange(5, 10, 0))
}

func TestValidateBaseURL(t *testing.T) {
	assert.NoError(t, ValidateBaseURL("https://api.coingecko.com/api/v3"))
	assert.NoError(t, ValidateBaseURL("http://localhost:8080"))
	assert.Error(t, ValidateBaseURL("ftp://example.com"))
	assert.Error(t, ValidateBaseURL("/relative"))
	assert.Error(t, ValidateBaseURL("://bad"))
}

func TestOneOf(t *testing.T) {
	v := OneOf("postgres", "sqlite")
	assert.NoError(t, v("sqlite"))
	assert.Error(t, v("mysql"))
}
