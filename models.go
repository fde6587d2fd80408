package meteolux

import (
	"time"

	j "github.com/goccy/go-json"
)

// Language is a UI language accepted by the service.
type Language string

// Languages the service translates to.
const (
	LanguageFR Language = "fr"
	LanguageDE Language = "de"
	LanguageEN Language = "en"
	LanguageLB Language = "lb"
)

// IntOrInts holds a value the service returns either as a single integer or
// as a list of integers. IsList records which form the payload carried.
type IntOrInts struct {
	IsList bool
	Int    int
	Ints   []int
}

// MarshalJSON emits the active branch.
func (v IntOrInts) MarshalJSON() ([]byte, error) {
	if v.IsList {
		return j.Marshal(v.Ints)
	}
	return j.Marshal(v.Int)
}

// DateOrStrings holds a road-status date that arrives either as a calendar
// date or as a list of display strings. IsList records which form matched.
type DateOrStrings struct {
	IsList  bool
	Date    time.Time
	Strings []string
}

// MarshalJSON emits the active branch.
func (v DateOrStrings) MarshalJSON() ([]byte, error) {
	if v.IsList {
		return j.Marshal(v.Strings)
	}
	return j.Marshal(v.Date.Format("2006-01-02"))
}

// Icon identifies a weather icon.
type Icon struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// MoonIcon identifies a moon phase icon. Its IDs are strings, unlike Icon's.
type MoonIcon struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Wind is a wind reading with pre-formatted speed strings.
type Wind struct {
	Direction string  `json:"direction"`
	Speed     string  `json:"speed"`
	Gusts     *string `json:"gusts"`
}

// Temperature carries the measured or forecast temperature. The service
// sends a single value for point-in-time readings and a list for intervals.
type Temperature struct {
	Temperature IntOrInts `json:"temperature"`
	Humidex     *string   `json:"humidex"`
	Felt        *int      `json:"felt"`
}

// CurrentWeather is the point-in-time part of a forecast.
type CurrentWeather struct {
	Date        time.Time   `json:"date"`
	Icon        Icon        `json:"icon"`
	Wind        Wind        `json:"wind"`
	Rain        string      `json:"rain"`
	Snow        string      `json:"snow"`
	Type        string      `json:"type"`
	Temperature Temperature `json:"temperature"`
}

// HourlyWeather is one entry of the hour-by-hour forecast.
type HourlyWeather struct {
	Date        time.Time   `json:"date"`
	Icon        Icon        `json:"icon"`
	Wind        Wind        `json:"wind"`
	Rain        string      `json:"rain"`
	Snow        string      `json:"snow"`
	Type        string      `json:"type"`
	Temperature Temperature `json:"temperature"`
}

// DailyWeather is one entry of the day-by-day forecast.
type DailyWeather struct {
	Date           time.Time   `json:"date"`
	Icon           Icon        `json:"icon"`
	Wind           Wind        `json:"wind"`
	Rain           string      `json:"rain"`
	Snow           string      `json:"snow"`
	Type           string      `json:"type"`
	TemperatureMin Temperature `json:"temperatureMin"`
	TemperatureMax Temperature `json:"temperatureMax"`
	Sunshine       int         `json:"sunshine"`
	UVIndex        int         `json:"uvIndex"`
}

// Trend is the forecast half of the graphical data.
type Trend struct {
	Date          time.Time `json:"date"`
	MinTemp       float64   `json:"minTemp"`
	MaxTemp       float64   `json:"maxTemp"`
	Precipitation float64   `json:"precipitation"`
}

// Climatology is the history half of the graphical data.
type Climatology struct {
	Date          time.Time `json:"date"`
	MinTemp       float64   `json:"minTemp"`
	MaxTemp       float64   `json:"maxTemp"`
	Precipitation float64   `json:"precipitation"`
	MeanTemp      float64   `json:"meanTemp"`
	Sunshine      *float64  `json:"sunshine"`
}

// GraphicalData groups the plottable history and forecast series.
type GraphicalData struct {
	History  []Climatology `json:"history"`
	Forecast []Trend       `json:"forecast"`
}

// Vigilance is one weather alert.
type Vigilance struct {
	DatetimeStart time.Time `json:"datetimeStart"`
	DatetimeEnd   time.Time `json:"datetimeEnd"`
	Level         int       `json:"level"`
	Type          int       `json:"type"`
	Group         int       `json:"group"`
	Region        string    `json:"region"`
	Description   string    `json:"description"`
}

// RoadStatusItem is one road condition bulletin.
type RoadStatusItem struct {
	Date        DateOrStrings `json:"date"`
	Description string        `json:"description"`
}

// ImageOut references one published image.
type ImageOut struct {
	Date     time.Time `json:"date"`
	Provider string    `json:"provider"`
	URL      string    `json:"url"`
}

// Radar groups radar imagery.
type Radar struct {
	RealTime []ImageOut `json:"realTime"`
	Forecast []ImageOut `json:"forecast"`
}

// Satellite groups satellite imagery.
type Satellite struct {
	Infrared []ImageOut `json:"infrared"`
	Visual   []ImageOut `json:"visual"`
}

// Ephemeris carries sun and moon times for one day. The time-of-day values
// are pre-formatted strings, sunshine is an ISO 8601 duration.
type Ephemeris struct {
	Date     time.Time `json:"date"`
	Sunrise  string    `json:"sunrise"`
	Sunset   string    `json:"sunset"`
	Moonrise string    `json:"moonrise"`
	Moonset  string    `json:"moonset"`
	Sunshine string    `json:"sunshine"`
	MoonIcon MoonIcon  `json:"moonIcon"`
	UVIndex  int       `json:"uvIndex"`
}

// HourlyWindForecast is an hourly wind report at several altitudes (feet).
type HourlyWindForecast struct {
	Date      time.Time `json:"date"`
	QNH       int       `json:"qnh"`
	Wind      Wind      `json:"wind"`
	Wind1500  Wind      `json:"wind1500"`
	Wind2500  Wind      `json:"wind2500"`
	Wind5000  Wind      `json:"wind5000"`
	Wind10000 Wind      `json:"wind10000"`
}

// ATCReportForecast is the forecast block of the ATC dashboard.
type ATCReportForecast struct {
	Hourly []HourlyWindForecast `json:"hourly"`
}

// ATCReport is the data behind the ATC dashboard.
type ATCReport struct {
	Forecast ATCReportForecast `json:"forecast"`
}

// BookmarkCity is a city entry of the mobile app's bookmark list, with the
// current temperature and icon attached.
type BookmarkCity struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Region      string  `json:"region"`
	Canton      string  `json:"canton"`
	Domain      string  `json:"domain"`
	Lat         float64 `json:"lat"`
	Long        float64 `json:"long"`
	Temperature float64 `json:"temperature"`
	Icon        Icon    `json:"icon"`
}

// Bookmarks lists all bookmarkable cities and, when coordinates were given,
// the nearest one.
type Bookmarks struct {
	Cities      []BookmarkCity `json:"cities"`
	NearestCity *BookmarkCity  `json:"nearestCity"`
}

// OutCity is a city with its translated name.
type OutCity struct {
	ID     int     `json:"id"`
	Name   string  `json:"name"`
	Region string  `json:"region"`
	Canton string  `json:"canton"`
	Domain string  `json:"domain"`
	Lat    float64 `json:"lat"`
	Long   float64 `json:"long"`
}

// InObservation is a participative observation submitted by a user.
type InObservation struct {
	Lat         float64 `json:"lat"`
	Long        float64 `json:"long"`
	Description string  `json:"description"`
	Weather     int     `json:"weather"`
}

// SensorLevel describes where a sensor is mounted.
type SensorLevel struct {
	LevelType string  `json:"levelType"`
	Unit      string  `json:"unit"`
	Value     float64 `json:"value"`
}

// ObservationMetadata describes one published sensor.
type ObservationMetadata struct {
	ID                  string       `json:"id"`
	Name                string       `json:"name"`
	Description         string       `json:"description"`
	DataType            string       `json:"dataType"`
	Unit                string       `json:"unit"`
	Category            string       `json:"category"`
	PerformanceCategory string       `json:"performanceCategory"`
	QualityCode         int          `json:"qualitycode"`
	TimeOffsets         string       `json:"timeoffsets"`
	TimeResolution      string       `json:"timeresolution"`
	SensorLevels        *SensorLevel `json:"sensorlevels"`
}

// ObservationMetadataResponse is the sensor catalogue with its licence
// boilerplate, which the service may omit and the schema then fills in.
type ObservationMetadataResponse struct {
	Licence             []string              `json:"licence"`
	DocURL              string                `json:"docUrl"`
	Data                []ObservationMetadata `json:"data"`
	TotalItemCount      int                   `json:"totalItemCount"`
	QualityCodes        map[string]string     `json:"qualityCodes"`
	PerformanceCategory map[string]string     `json:"performanceCategory"`
}

// ObservationResponseData links a sensor ID to its latest value. Value is
// nil when the sensor reported nothing.
type ObservationResponseData struct {
	ID    string   `json:"id"`
	Value *float64 `json:"value"`
}

// ObservationResponse is the latest round of observations.
type ObservationResponse struct {
	Licence        []string                  `json:"licence"`
	DocURL         string                    `json:"docUrl"`
	Data           []ObservationResponseData `json:"data"`
	TotalItemCount int                       `json:"totalItemCount"`
	Timestamp      time.Time                 `json:"timestamp"`
}

// VigilanceSettings selects which alerts a user wants pushed.
type VigilanceSettings struct {
	Level        int   `json:"level"`
	TypeAir      bool  `json:"typeAir"`
	TypeCold     bool  `json:"typeCold"`
	TypeFlooding bool  `json:"typeFlooding"`
	TypeHeat     bool  `json:"typeHeat"`
	TypeIce      bool  `json:"typeIce"`
	TypeRain     bool  `json:"typeRain"`
	TypeSnow     bool  `json:"typeSnow"`
	TypeStorm    bool  `json:"typeStorm"`
	TypeWind     *bool `json:"typeWind"`
	ZoneNorth    bool  `json:"zoneNorth"`
	ZoneSouth    bool  `json:"zoneSouth"`
}

// User carries a device's push token and notification preferences.
type User struct {
	Language     Language          `json:"language"`
	PushToken    string            `json:"pushToken"`
	PushMorning  bool              `json:"pushMorning"`
	PushEvening  bool              `json:"pushEvening"`
	Device       string            `json:"device"`
	Version      string            `json:"version"`
	BuildVersion string            `json:"buildversion"`
	Vigilance    VigilanceSettings `json:"vigilance"`
}

// WeatherResponseForecast groups the current, hourly and daily forecasts.
type WeatherResponseForecast struct {
	Current CurrentWeather  `json:"current"`
	Hourly  []HourlyWeather `json:"hourly"`
	Daily   []DailyWeather  `json:"daily"`
}

// WeatherResponse is the full weather bundle for one location.
type WeatherResponse struct {
	City       OutCity                 `json:"city"`
	Forecast   WeatherResponseForecast `json:"forecast"`
	Vigilances []Vigilance             `json:"vigilances"`
	RoadStatus []RoadStatusItem        `json:"roadStatus"`
	Ephemeris  Ephemeris               `json:"ephemeris"`
	Radar      Radar                   `json:"radar"`
	Satellite  Satellite               `json:"satellite"`
	Data       GraphicalData           `json:"data"`
}
