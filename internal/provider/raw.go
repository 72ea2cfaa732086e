package provider

// RawForecast is the forecast.json response body as the provider sends it.
// The three top-level sections are required; everything below them is
// optional and mapped leniently by the normalizer.
type RawForecast struct {
	Location *RawLocation        `json:"location" validate:"required"`
	Current  *RawCurrent         `json:"current" validate:"required"`
	Forecast *RawForecastSection `json:"forecast" validate:"required"`
}

type RawLocation struct {
	Name           string  `json:"name"`
	Region         string  `json:"region"`
	Country        string  `json:"country"`
	Lat            float64 `json:"lat"`
	Lon            float64 `json:"lon"`
	TzID           string  `json:"tz_id"`
	LocaltimeEpoch int64   `json:"localtime_epoch"`
	Localtime      string  `json:"localtime"`
}

type RawCondition struct {
	Text string `json:"text"`
	Icon string `json:"icon"`
	Code int    `json:"code"`
}

type RawCurrent struct {
	LastUpdated string       `json:"last_updated"`
	TempF       float64      `json:"temp_f"`
	FeelsLikeF  float64      `json:"feelslike_f"`
	Condition   RawCondition `json:"condition"`
	Humidity    int          `json:"humidity"`
	WindMph     float64      `json:"wind_mph"`
	WindDir     *string      `json:"wind_dir"`
}

type RawForecastSection struct {
	ForecastDay []RawForecastDay `json:"forecastday"`
}

type RawForecastDay struct {
	Date string    `json:"date"`
	Day  RawDay    `json:"day"`
	Hour []RawHour `json:"hour"`
}

type RawDay struct {
	MaxTempF          float64      `json:"maxtemp_f"`
	MinTempF          float64      `json:"mintemp_f"`
	Condition         RawCondition `json:"condition"`
	DailyChanceOfRain *float64     `json:"daily_chance_of_rain"`
	DailyChanceOfSnow *float64     `json:"daily_chance_of_snow"`
}

type RawHour struct {
	Time         string       `json:"time"`
	TempF        float64      `json:"temp_f"`
	Condition    RawCondition `json:"condition"`
	ChanceOfRain *float64     `json:"chance_of_rain"`
	ChanceOfSnow *float64     `json:"chance_of_snow"`
	WindMph      float64      `json:"wind_mph"`
	Humidity     int          `json:"humidity"`
}
