package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPtr(t *testing.T) {
	p := Ptr("reefer.local")
	require.NotNil(t, p)
	assert.Equal(t, "reefer.local", *p)
}

func TestPtrOrNil(t *testing.T) {
	assert.Nil(t, PtrOrNil(""))
	assert.Nil(t, PtrOrNil(time.Time{}))

	p := PtrOrNil("192.168.4.1")
	require.NotNil(t, p)
	assert.Equal(t, "192.168.4.1", *p)
}

func TestValue(t *testing.T) {
	x := 42
	assert.Equal(t, 42, Value(&x))
}

func TestValue_Nil(t *testing.T) {
	assert.Equal(t, 0, Value[int](nil))
	assert.Equal(t, "", Value[string](nil))
}
