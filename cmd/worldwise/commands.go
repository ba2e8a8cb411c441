package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/alexivanou/worldwise/internal/citystore"
	"github.com/alexivanou/worldwise/internal/creation"
	"github.com/alexivanou/worldwise/internal/geocode"
	"github.com/alexivanou/worldwise/internal/geolocate"
	"github.com/alexivanou/worldwise/internal/mapview"
	"github.com/alexivanou/worldwise/internal/model"
	"github.com/alexivanou/worldwise/internal/position"
	"go.uber.org/zap"
)

const (
	dateLayout   = "January 2, 2006"
	emptyMessage = "Add your first city by clicking on a city on the map."
)

// loaded starts the store and turns a rejected load into an error
func (a *app) loaded(ctx context.Context) (citystore.State, error) {
	a.store.Start(ctx)
	st := a.store.State()
	if st.Error != "" {
		return st, errors.New(st.Error)
	}
	return st, nil
}

func (a *app) list(ctx context.Context, _ []string) error {
	st, err := a.loaded(ctx)
	if err != nil {
		return err
	}
	if len(st.Cities) == 0 {
		fmt.Fprintln(a.out, emptyMessage)
		return nil
	}
	for _, c := range st.Cities {
		fmt.Fprintln(a.out, cityLine(c))
	}
	return nil
}

func (a *app) countries(ctx context.Context, _ []string) error {
	st, err := a.loaded(ctx)
	if err != nil {
		return err
	}
	countries := citystore.Countries(st.Cities)
	if len(countries) == 0 {
		fmt.Fprintln(a.out, emptyMessage)
		return nil
	}
	for _, c := range countries {
		fmt.Fprintf(a.out, "%s %s\n", model.FlagEmoji(c.Emoji), c.Country)
	}
	return nil
}

func (a *app) show(ctx context.Context, args []string) error {
	id, err := idArg(args)
	if err != nil {
		return err
	}

	a.store.GetCity(ctx, id)
	st := a.store.State()
	if st.Error != "" {
		return errors.New(st.Error)
	}

	fmt.Fprint(a.out, cityDetails(st.CurrentCity))
	return nil
}

func (a *app) add(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	lat := fs.String("lat", "", "latitude of the clicked point")
	lng := fs.String("lng", "", "longitude of the clicked point")
	name := fs.String("name", "", "city name (defaults to the geocoded place)")
	date := fs.String("date", "", "visit date, YYYY-MM-DD (defaults to today)")
	notes := fs.String("notes", "", "notes about the trip")
	if err := fs.Parse(args); err != nil {
		return err
	}

	geocoder := geocode.NewClient(geocode.Options{
		BaseURL:       a.cfg.Geocode.BaseURL,
		RatePerSecond: a.cfg.Geocode.RatePerSecond,
		CacheTTL:      a.cfg.Geocode.CacheTTL,
	})
	workflow := creation.NewWorkflow(geocoder, a.store, a.logger)

	values := url.Values{}
	if *lat != "" {
		values.Set(position.ParamLat, *lat)
	}
	if *lng != "" {
		values.Set(position.ParamLng, *lng)
	}

	form, err := workflow.Prepare(ctx, values)
	if err != nil {
		return errors.New(creation.Message(err))
	}
	if *name != "" {
		form.CityName = *name
	}
	if *date != "" {
		d, err := time.Parse(time.DateOnly, *date)
		if err != nil {
			return fmt.Errorf("invalid date %q: %w", *date, err)
		}
		form.Date = d
	}
	form.Notes = *notes

	if err := workflow.Submit(ctx, *form); err != nil {
		return err
	}

	st := a.store.State()
	if st.Error != "" {
		return errors.New(st.Error)
	}
	fmt.Fprintf(a.out, "Added %s\n", cityLine(st.CurrentCity))
	return nil
}

func (a *app) delete(ctx context.Context, args []string) error {
	id, err := idArg(args)
	if err != nil {
		return err
	}

	a.store.DeleteCity(ctx, id)
	if st := a.store.State(); st.Error != "" {
		return errors.New(st.Error)
	}
	fmt.Fprintf(a.out, "Deleted city %d\n", id)
	return nil
}

func (a *app) center(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("center", flag.ContinueOnError)
	lat := fs.String("lat", "", "latitude from the navigation query")
	lng := fs.String("lng", "", "longitude from the navigation query")
	locate := fs.Bool("locate", false, "use the device position (GeoIP)")
	ip := fs.String("ip", a.cfg.Geolocation.Address, "address to locate with -locate")
	if err := fs.Parse(args); err != nil {
		return err
	}

	// Without -locate the resolver has no device source
	var locator position.Locator
	if *locate {
		g, err := geolocate.OpenGeoIP(a.cfg.Geolocation.GeoIPPath, *ip)
		if err != nil {
			return err
		}
		defer g.Close()
		locator = g
	}

	resolver := position.NewResolver(locator, a.logger, position.WithTimeout(a.cfg.Geolocation.Timeout))
	values := url.Values{}
	if *lat != "" {
		values.Set(position.ParamLat, *lat)
	}
	if *lng != "" {
		values.Set(position.ParamLng, *lng)
	}
	if err := resolver.SetExternal(values); err != nil {
		return err
	}

	if _, err := a.loaded(ctx); err != nil {
		a.logger.Warn("showing map without cities", zap.Error(err))
	}

	renderer := &textRenderer{}
	controller := mapview.NewController(resolver, a.store, renderer, mapview.NavigatorFunc(func(string) {}), a.logger)
	controller.Start()
	defer controller.Stop()

	if *locate {
		if err := controller.Locate(ctx); err != nil {
			return err
		}
	}

	fmt.Fprint(a.out, renderer.String())
	if controller.ShowLocateButton() {
		fmt.Fprintf(a.out, "[%s]\n", controller.LocateLabel())
	}
	return nil
}

func idArg(args []string) (int, error) {
	if len(args) != 1 {
		return 0, errors.New("expected exactly one city id")
	}
	id, err := strconv.Atoi(args[0])
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid city id %q", args[0])
	}
	return id, nil
}
