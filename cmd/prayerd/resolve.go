package main

import (
	"errors"
	"prayerd/internal"
	"prayerd/internal/di"
	"prayerd/internal/models"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

var resolveOpts struct {
	lat, lng float64
	city     string
	country  string
	ip       string
	scope    string
}

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve today's prayer times once and print them as JSON",
	Long: `Resolves today's prayer times by coordinates, by city or by IP address.

Examples:
  prayerd resolve --lat 21.4225 --lng 39.8262
  prayerd resolve --city Mecca --country "Saudi Arabia"
  prayerd resolve --ip 203.0.113.7
  prayerd resolve                      # geolocate this machine`,
	Args: cobra.NoArgs,
	RunE: runResolve,
}

func init() {
	f := resolveCmd.Flags()
	f.Float64Var(&resolveOpts.lat, "lat", 0, "latitude in degrees")
	f.Float64Var(&resolveOpts.lng, "lng", 0, "longitude in degrees")
	f.StringVar(&resolveOpts.city, "city", "", "city name")
	f.StringVar(&resolveOpts.country, "country", "", "country name")
	f.StringVar(&resolveOpts.ip, "ip", "", "IP address to geolocate")
	f.StringVar(&resolveOpts.scope, "scope", "", "cache scope")

	resolveCmd.MarkFlagsRequiredTogether("lat", "lng")
	resolveCmd.MarkFlagsRequiredTogether("city", "country")
	resolveCmd.MarkFlagsMutuallyExclusive("lat", "city", "ip")
}

func buildResolveRequest(cmd *cobra.Command) (internal.ResolveRequest, error) {
	req := internal.ResolveRequest{
		Scope:   resolveOpts.scope,
		City:    resolveOpts.city,
		Country: resolveOpts.country,
		IP:      resolveOpts.ip,
	}
	if cmd.Flags().Changed("lat") {
		req.Coords = &models.Coordinates{Lat: resolveOpts.lat, Lng: resolveOpts.lng}
		if err := req.Coords.Validate(); err != nil {
			return req, err
		}
	}
	if (req.City == "") != (req.Country == "") {
		return req, errors.New("--city and --country must be given together")
	}
	return req, nil
}

func runResolve(cmd *cobra.Command, args []string) error {
	req, err := buildResolveRequest(cmd)
	if err != nil {
		return err
	}

	resolver, err := di.InitResolver(cliFlags())
	if err != nil {
		return err
	}
	defer resolver.Close()

	res, err := resolver.Resolve(cmd.Context(), req)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(append(out, '\n'))
	return err
}
