package meteolux

import (
	"bytes"
	"context"
	"fmt"
	"time"

	j "github.com/goccy/go-json"

	"github.com/sim0nx/meteolux-go/schema"
)

// intOrInts accepts a single integer or a list of integers and records which
// form arrived.
func intOrInts() schema.Type {
	return schema.Transform(schema.OneOf(
		schema.Variant{Name: "int", Type: schema.Int()},
		schema.Variant{Name: "list", Type: schema.Array(schema.Int())},
	), func(v any) (any, error) {
		u := v.(schema.Union)
		switch u.Which {
		case "int":
			return IntOrInts{Int: int(u.Value.(int64))}, nil
		case "list":
			arr := u.Value.([]any)
			out := make([]int, len(arr))
			for i, e := range arr {
				out[i] = int(e.(int64))
			}
			return IntOrInts{IsList: true, Ints: out}, nil
		}
		return nil, fmt.Errorf("unhandled variant %q", u.Which)
	})
}

// dateOrStrings accepts a calendar date or a list of display strings and
// records which form arrived.
func dateOrStrings() schema.Type {
	return schema.Transform(schema.OneOf(
		schema.Variant{Name: "date", Type: schema.Date()},
		schema.Variant{Name: "list", Type: schema.Array(schema.String())},
	), func(v any) (any, error) {
		u := v.(schema.Union)
		switch u.Which {
		case "date":
			return DateOrStrings{Date: u.Value.(time.Time)}, nil
		case "list":
			arr := u.Value.([]any)
			out := make([]string, len(arr))
			for i, e := range arr {
				out[i] = e.(string)
			}
			return DateOrStrings{IsList: true, Strings: out}, nil
		}
		return nil, fmt.Errorf("unhandled variant %q", u.Which)
	})
}

var iconSchema = schema.MustBind[Icon](schema.Object().
	Field("id", schema.Int()).Required().
	Field("name", schema.String()).Required())

var moonIconSchema = schema.MustBind[MoonIcon](schema.Object().
	Field("id", schema.String()).Required().
	Field("name", schema.String()).Required())

var windSchema = schema.MustBind[Wind](schema.Object().
	Field("direction", schema.String()).Required().
	Field("speed", schema.String()).Required().
	Field("gusts", schema.Nullable(schema.String())))

var temperatureSchema = schema.MustBind[Temperature](schema.Object().
	Field("temperature", intOrInts()).Required().
	Field("humidex", schema.Nullable(schema.String())).
	Field("felt", schema.Nullable(schema.Int())))

// weatherCommon declares the fields shared by the current, hourly and daily
// forecast entries. The type literal defaults to its own single member, as
// the service omits it.
func weatherCommon(kind string) *schema.FieldChain {
	return schema.Object().
		Field("date", schema.DateTime()).Required().
		Field("icon", schema.AsType(iconSchema)).Required().
		Field("wind", schema.AsType(windSchema)).Required().
		Field("rain", schema.String()).Required().
		Field("snow", schema.String()).Required().
		Field("type", schema.StringEnum(kind)).Default(kind)
}

var currentWeatherSchema = schema.MustBind[CurrentWeather](weatherCommon("current").
	Field("temperature", schema.AsType(temperatureSchema)).Required())

var hourlyWeatherSchema = schema.MustBind[HourlyWeather](weatherCommon("hourly").
	Field("temperature", schema.AsType(temperatureSchema)).Required())

var dailyWeatherSchema = schema.MustBind[DailyWeather](weatherCommon("daily").
	Field("temperature_min", schema.AsType(temperatureSchema)).Alias("temperatureMin").Required().
	Field("temperature_max", schema.AsType(temperatureSchema)).Alias("temperatureMax").Required().
	Field("sunshine", schema.Int()).Required().
	Field("uv_index", schema.Int()).Alias("uvIndex").Required())

var trendSchema = schema.MustBind[Trend](schema.Object().
	Field("date", schema.Date()).Required().
	Field("min_temp", schema.Float()).Alias("minTemp").Required().
	Field("max_temp", schema.Float()).Alias("maxTemp").Required().
	Field("precipitation", schema.Float()).Required())

var climatologySchema = schema.MustBind[Climatology](schema.Object().
	Field("date", schema.DateTime()).Required().
	Field("min_temp", schema.Float()).Alias("minTemp").Required().
	Field("max_temp", schema.Float()).Alias("maxTemp").Required().
	Field("precipitation", schema.Float()).Required().
	Field("mean_temp", schema.Float()).Alias("meanTemp").Required().
	Field("sunshine", schema.Nullable(schema.Float())))

var graphicalDataSchema = schema.MustBind[GraphicalData](schema.Object().
	Field("history", schema.Array(schema.AsType(climatologySchema))).Required().
	Field("forecast", schema.Array(schema.AsType(trendSchema))).Required())

var vigilanceSchema = schema.MustBind[Vigilance](schema.Object().
	Field("datetime_start", schema.DateTime()).Alias("datetimeStart").Required().
	Field("datetime_end", schema.DateTime()).Alias("datetimeEnd").Required().
	Field("level", schema.IntEnum(2, 3, 4)).Required().
	Field("type", schema.Int()).Required().
	Field("group", schema.Int()).Required().
	Field("region", schema.StringEnum("north", "south", "all")).Required().
	Field("description", schema.String()).Required())

var roadStatusItemSchema = schema.MustBind[RoadStatusItem](schema.Object().
	Field("date", dateOrStrings()).Required().
	Field("description", schema.String()).Required())

var imageOutSchema = schema.MustBind[ImageOut](schema.Object().
	Field("date", schema.DateTime()).Required().
	Field("provider", schema.String()).Required().
	Field("url", schema.MaxLen(schema.MinLen(schema.String(), 1), 2083)).Required())

var radarSchema = schema.MustBind[Radar](schema.Object().
	Field("real_time", schema.Array(schema.AsType(imageOutSchema))).Alias("realTime").Required().
	Field("forecast", schema.Array(schema.AsType(imageOutSchema))).Required())

var satelliteSchema = schema.MustBind[Satellite](schema.Object().
	Field("infrared", schema.Array(schema.AsType(imageOutSchema))).Required().
	Field("visual", schema.Array(schema.AsType(imageOutSchema))).Required())

var ephemerisSchema = schema.MustBind[Ephemeris](schema.Object().
	Field("date", schema.Date()).Required().
	Field("sunrise", schema.String()).Required().
	Field("sunset", schema.String()).Required().
	Field("moonrise", schema.String()).Required().
	Field("moonset", schema.String()).Required().
	Field("sunshine", schema.String()).Required().
	Field("moon_icon", schema.AsType(moonIconSchema)).Alias("moonIcon").Required().
	Field("uv_index", schema.Range(schema.Int(), 0, 12)).Alias("uvIndex").Required())

var hourlyWindForecastSchema = schema.MustBind[HourlyWindForecast](schema.Object().
	Field("date", schema.DateTime()).Required().
	Field("qnh", schema.Int()).Required().
	Field("wind", schema.AsType(windSchema)).Required().
	Field("wind1500", schema.AsType(windSchema)).Required().
	Field("wind2500", schema.AsType(windSchema)).Required().
	Field("wind5000", schema.AsType(windSchema)).Required().
	Field("wind10000", schema.AsType(windSchema)).Required())

var atcReportForecastSchema = schema.MustBind[ATCReportForecast](schema.Object().
	Field("hourly", schema.Array(schema.AsType(hourlyWindForecastSchema))).Required())

var atcReportSchema = schema.MustBind[ATCReport](schema.Object().
	Field("forecast", schema.AsType(atcReportForecastSchema)).Required())

// cantons are the twelve Luxembourgish cantons a city can belong to.
var cantons = []string{
	"Capellen", "Clervaux", "Diekirch", "Echternach", "Esch-sur-Alzette",
	"Grevenmacher", "Luxembourg", "Mersch", "Redange", "Remich", "Vianden",
	"Wiltz",
}

var bookmarkCitySchema = schema.MustBind[BookmarkCity](schema.Object().
	Field("id", schema.Int()).Required().
	Field("name", schema.String()).Required().
	Field("region", schema.StringEnum("N", "S")).Default("S").
	Field("canton", schema.StringEnum(cantons...)).Required().
	Field("domain", schema.StringEnum("villes", "lieu", "fluvial")).Required().
	Field("lat", schema.Float()).Required().
	Field("long", schema.Float()).Required().
	Field("temperature", schema.Float()).Required().
	Field("icon", schema.AsType(iconSchema)).Required())

var bookmarksSchema = schema.MustBind[Bookmarks](schema.Object().
	Field("cities", schema.Array(schema.AsType(bookmarkCitySchema))).Required().
	Field("nearest_city", schema.Nullable(schema.AsType(bookmarkCitySchema))).Alias("nearestCity"))

var outCitySchema = schema.MustBind[OutCity](schema.Object().
	Field("id", schema.Int()).Required().
	Field("name", schema.String()).Required().
	Field("region", schema.StringEnum("N", "S")).Default("S").
	Field("canton", schema.StringEnum(cantons...)).Required().
	Field("domain", schema.StringEnum("villes", "lieu", "fluvial")).Required().
	Field("lat", schema.Float()).Required().
	Field("long", schema.Float()).Required())

var inObservationSchema = schema.MustBind[InObservation](schema.Object().
	Field("lat", schema.Range(schema.Float(), -90, 90)).Required().
	Field("long", schema.Range(schema.Float(), -180, 180)).Required().
	Field("description", schema.MaxLen(schema.String(), 1024)).Required().
	Field("weather", schema.Int()).Required())

var sensorLevelSchema = schema.MustBind[SensorLevel](schema.Object().
	Field("level_type", schema.StringEnum("height_above_ground")).Alias("levelType").Required().
	Field("unit", schema.StringEnum("m")).Required().
	Field("value", schema.Min(schema.Float(), 0)).Required())

var observationMetadataSchema = schema.MustBind[ObservationMetadata](schema.Object().
	Field("id", schema.String()).Required().
	Field("name", schema.String()).Required().
	Field("description", schema.String()).Required().
	Field("data_type", schema.StringEnum("realtime", "climate")).Alias("dataType").Required().
	Field("unit", schema.StringEnum("m", "m/s", "%", "1/10 kt", "degC", "degrees", "ft", "hPa", "mm")).Required().
	Field("category", schema.StringEnum("Wind", "Cloud Cover", "Atmospheric pressure", "Precipitation", "Temperature", "Humidity", "Visibility")).Required().
	Field("performance_category", schema.StringEnum("A", "B", "C", "D", "E")).Alias("performanceCategory").Required().
	Field("qualitycode", schema.IntEnum(0, 1, 2, 3, 4, 5, 6, 7)).Required().
	Field("timeoffsets", schema.StringEnum("PT0H")).Required().
	Field("timeresolution", schema.StringEnum("PT1M", "PT1H")).Required().
	Field("sensorlevels", schema.Nullable(schema.AsType(sensorLevelSchema))))

// licenceDefault is the boilerplate the service attaches to open-data
// responses; it is filled in when omitted.
var licenceDefault = []string{"Creative Commons", "https://creativecommons.org/public-domain/cc0/"}

var observationMetadataResponseSchema = schema.MustBind[ObservationMetadataResponse](schema.Object().
	Field("licence", schema.Array(schema.String())).Default(licenceDefault).
	Field("doc_url", schema.String()).Alias("docUrl").Default("/docs").
	Field("data", schema.Array(schema.AsType(observationMetadataSchema))).Required().
	Field("total_item_count", schema.Int()).Alias("totalItemCount").Default(1).
	Field("quality_codes", schema.StringMap()).Alias("qualityCodes").
	Default(map[string]string{"0": "Value is controlled and found O.K."}).
	Field("performance_category", schema.StringMap()).Alias("performanceCategory").
	Default(map[string]string{"A": "The sensor type fulfills the requirements from WMO/CIMOs on measurement accuracy, calibration and maintenance."}))

var observationResponseDataSchema = schema.MustBind[ObservationResponseData](schema.Object().
	Field("id", schema.String()).Required().
	Field("value", schema.Nullable(schema.Float())).Required())

var observationResponseSchema = schema.MustBind[ObservationResponse](schema.Object().
	Field("licence", schema.Array(schema.String())).Default(licenceDefault).
	Field("doc_url", schema.String()).Alias("docUrl").Default("/docs").
	Field("data", schema.Array(schema.AsType(observationResponseDataSchema))).Required().
	Field("total_item_count", schema.Int()).Alias("totalItemCount").Default(1).
	Field("timestamp", schema.DateTime()).Required())

var vigilanceSettingsSchema = schema.MustBind[VigilanceSettings](schema.Object().
	Field("level", schema.IntEnum(2, 3, 4)).Required().
	Field("type_air", schema.Bool()).Alias("typeAir").Default(false).
	Field("type_cold", schema.Bool()).Alias("typeCold").Default(false).
	Field("type_flooding", schema.Bool()).Alias("typeFlooding").Default(false).
	Field("type_heat", schema.Bool()).Alias("typeHeat").Default(false).
	Field("type_ice", schema.Bool()).Alias("typeIce").Default(false).
	Field("type_rain", schema.Bool()).Alias("typeRain").Default(false).
	Field("type_snow", schema.Bool()).Alias("typeSnow").Default(false).
	Field("type_storm", schema.Bool()).Alias("typeStorm").Default(false).
	Field("type_wind", schema.Nullable(schema.Bool())).Alias("typeWind").
	Field("zone_north", schema.Bool()).Alias("zoneNorth").Required().
	Field("zone_south", schema.Bool()).Alias("zoneSouth").Required())

var userSchema = schema.MustBind[User](schema.Object().
	Field("language", schema.StringEnum("fr", "de", "en", "lb")).Required().
	Field("push_token", schema.MaxLen(schema.String(), 50)).Alias("pushToken").Required().
	Field("push_morning", schema.Bool()).Alias("pushMorning").Default(false).
	Field("push_evening", schema.Bool()).Alias("pushEvening").Default(false).
	Field("device", schema.String()).Required().
	Field("version", schema.String()).Required().
	Field("buildversion", schema.String()).Required().
	Field("vigilance", schema.AsType(vigilanceSettingsSchema)).Required())

var weatherResponseForecastSchema = schema.MustBind[WeatherResponseForecast](schema.Object().
	Field("current", schema.AsType(currentWeatherSchema)).Required().
	Field("hourly", schema.Array(schema.AsType(hourlyWeatherSchema))).Required().
	Field("daily", schema.Array(schema.AsType(dailyWeatherSchema))).Required())

var weatherResponseSchema = schema.MustBind[WeatherResponse](schema.Object().
	Field("city", schema.AsType(outCitySchema)).Required().
	Field("forecast", schema.AsType(weatherResponseForecastSchema)).Required().
	Field("vigilances", schema.Array(schema.AsType(vigilanceSchema))).Required().
	Field("road_status", schema.Array(schema.AsType(roadStatusItemSchema))).Alias("roadStatus").Required().
	Field("ephemeris", schema.AsType(ephemerisSchema)).Required().
	Field("radar", schema.AsType(radarSchema)).Required().
	Field("satellite", schema.AsType(satelliteSchema)).Required().
	Field("data", schema.AsType(graphicalDataSchema)).Required())

// interfaceTextsSchema keeps untyped text payloads inside the taxonomy: a
// non-object top level surfaces as a validation failure.
var interfaceTextsSchema = schema.Of[map[string]any](schema.Map())

// addObservationSchema types the confirmation message the service answers
// observation submissions with.
var addObservationSchema = schema.Of[string](schema.String())

// Validate checks u against its schema without performing any call. It
// returns schema.Issues describing every violation.
func (u User) Validate(ctx context.Context) error {
	return validateLocal(ctx, u, userSchema)
}

// Validate checks o's coordinate bounds and description length without
// performing any call. It returns schema.Issues describing every violation.
func (o InObservation) Validate(ctx context.Context) error {
	return validateLocal(ctx, o, inObservationSchema)
}

// validateLocal round-trips v through JSON and parses it with s, applying
// the same checks a response body would get.
func validateLocal[T any](ctx context.Context, v T, s schema.Schema[T]) error {
	raw, err := j.Marshal(v)
	if err != nil {
		return err
	}
	dec := j.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var decoded any
	if err := dec.Decode(&decoded); err != nil {
		return err
	}
	if _, err := s.Parse(ctx, decoded); err != nil {
		return err
	}
	return nil
}
