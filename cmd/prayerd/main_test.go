package main

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseResolveFlags(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	resolveOpts.lat, resolveOpts.lng = 0, 0
	resolveOpts.city, resolveOpts.country, resolveOpts.ip, resolveOpts.scope = "", "", "", ""
	resolveCmd.Flags().VisitAll(func(f *pflag.Flag) { f.Changed = false })
	require.NoError(t, resolveCmd.ParseFlags(args))
	return resolveCmd
}

func TestRootCommandWiring(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["serve"])
	assert.True(t, names["resolve"])

	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("config"))
	assert.Equal(t, ".env", rootCmd.PersistentFlags().Lookup("env").DefValue)
}

func TestBuildResolveRequest_Coordinates(t *testing.T) {
	cmd := parseResolveFlags(t, "--lat", "21.4225", "--lng", "39.8262", "--scope", "home")

	req, err := buildResolveRequest(cmd)
	require.NoError(t, err)
	require.NotNil(t, req.Coords)
	assert.Equal(t, 21.4225, req.Coords.Lat)
	assert.Equal(t, "home", req.Scope)
}

func TestBuildResolveRequest_InvalidCoordinates(t *testing.T) {
	cmd := parseResolveFlags(t, "--lat", "95", "--lng", "0")

	_, err := buildResolveRequest(cmd)
	assert.Error(t, err)
}

func TestBuildResolveRequest_CityNeedsCountry(t *testing.T) {
	cmd := parseResolveFlags(t, "--city", "Mecca")

	_, err := buildResolveRequest(cmd)
	assert.Error(t, err)
}

func TestBuildResolveRequest_IP(t *testing.T) {
	cmd := parseResolveFlags(t, "--ip", "203.0.113.7")

	req, err := buildResolveRequest(cmd)
	require.NoError(t, err)
	assert.Nil(t, req.Coords)
	assert.Equal(t, "203.0.113.7", req.IP)
}
