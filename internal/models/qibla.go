package models

import "math"

var Kaaba = Coordinates{Lat: 21.422487, Lng: 39.826206}

// QiblaBearing is the initial great-circle bearing from c to the Kaaba, in degrees [0, 360).
func QiblaBearing(c Coordinates) float64 {
	phiK := toRad(Kaaba.Lat)
	lambdaK := toRad(Kaaba.Lng)
	phi := toRad(c.Lat)
	lambda := toRad(c.Lng)

	y := math.Sin(lambdaK - lambda)
	x := math.Cos(phi)*math.Tan(phiK) - math.Sin(phi)*math.Cos(lambdaK-lambda)
	angle := math.Atan2(y, x) * 180 / math.Pi
	return math.Mod(angle+360, 360)
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
