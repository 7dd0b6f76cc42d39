package helper

import (
	"math"

	"CareFinder-App/internal/domain/model"
)

const earthRadiusKm = 6371.0

// milesPerKm 1キロメートルあたりのマイル数（表示用のマイル換算に使用）
const milesPerKm = 0.621371

// HaversineKm Haversine公式で2地点間の大円距離を計算する (km)
// 入力は度単位。有限な数値に対してエラーは発生しない（NaNはそのまま伝播する）
func HaversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	rLat1 := lat1 * math.Pi / 180
	rLng1 := lng1 * math.Pi / 180
	rLat2 := lat2 * math.Pi / 180
	rLng2 := lng2 * math.Pi / 180
	dLat := rLat2 - rLat1
	dLng := rLng2 - rLng1
	a := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(rLat1)*math.Cos(rLat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

// HaversineKmLatLng LatLng型で2地点間の距離を計算する (km)
func HaversineKmLatLng(p1, p2 model.LatLng) float64 {
	return HaversineKm(p1.Lat, p1.Lng, p2.Lat, p2.Lng)
}

// KmToMiles キロメートルをマイルに換算する
func KmToMiles(km float64) float64 {
	return km * milesPerKm
}
