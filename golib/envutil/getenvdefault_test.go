package envutil

import (
	"os"
	"testing"

	"github.com/PAL-UH/active-learning/golib/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setenv(t *testing.T, name, value string) {
	prev, had := os.LookupEnv(name)
	require.NoError(t, os.Setenv(name, value))
	t.Cleanup(func() {
		if had {
			os.Setenv(name, prev)
		} else {
			os.Unsetenv(name)
		}
	})
}

func TestGetenvDefault(t *testing.T) {
	os.Unsetenv("AL_TEST_DATASET")
	assert.Equal(t, "data/mars.txt", GetenvDefault("AL_TEST_DATASET", "data/mars.txt"))

	setenv(t, "AL_TEST_DATASET", "/tmp/toy.txt")
	assert.Equal(t, "/tmp/toy.txt", GetenvDefault("AL_TEST_DATASET", "data/mars.txt"))
}

func TestGetenvDefaultInt(t *testing.T) {
	os.Unsetenv("AL_TEST_QUOTA")
	v, err := GetenvDefaultInt("AL_TEST_QUOTA", 200)
	require.NoError(t, err)
	assert.Equal(t, 200, v)

	setenv(t, "AL_TEST_QUOTA", "25")
	v, err = GetenvDefaultInt("AL_TEST_QUOTA", 200)
	require.NoError(t, err)
	assert.Equal(t, 25, v)

	setenv(t, "AL_TEST_QUOTA", "lots")
	_, err = GetenvDefaultInt("AL_TEST_QUOTA", 200)
	require.Error(t, err)
	assert.Equal(t, errors.KindConfig, errors.KindOf(err))
}

func TestGetenvDefaultFloat(t *testing.T) {
	setenv(t, "AL_TEST_SIZE", "0.25")
	v, err := GetenvDefaultFloat("AL_TEST_SIZE", 0.5)
	require.NoError(t, err)
	assert.Equal(t, 0.25, v)

	setenv(t, "AL_TEST_SIZE", "half")
	_, err = GetenvDefaultFloat("AL_TEST_SIZE", 0.5)
	assert.Error(t, err)
}
