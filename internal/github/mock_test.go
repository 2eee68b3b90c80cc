package github

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMockClient_GetRenderedReadme(t *testing.T) {
	m := NewMockClient()
	m.SetReadme("cancerit", "cgpPindel", "master", "<h1>cgpPindel</h1>")

	html, err := m.GetRenderedReadme(context.Background(), "cancerit", "cgpPindel", "master")
	require.NoError(t, err)
	require.Equal(t, "<h1>cgpPindel</h1>", html)
	require.Equal(t, []string{"cancerit/cgpPindel@master"}, m.Calls())
}

func TestMockClient_GetRenderedReadme_Missing(t *testing.T) {
	m := NewMockClient()

	_, err := m.GetRenderedReadme(context.Background(), "cancerit", "nope", "master")
	require.ErrorIs(t, err, ErrReadmeNotFound)
}

func TestMockClient_GetRenderedReadme_ErrorHook(t *testing.T) {
	m := NewMockClient()
	m.SetReadme("cancerit", "cgpPindel", "master", "<p>x</p>")
	m.GetRenderedReadmeError = errors.New("rate limited")

	_, err := m.GetRenderedReadme(context.Background(), "cancerit", "cgpPindel", "master")
	require.EqualError(t, err, "rate limited")
	require.Len(t, m.Calls(), 1)
}
