package repository

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/paulmach/orb"

	"CareFinder-App/internal/domain/model"
)

// ClinicToPoint クリニックの保存座標をorb.Pointに変換する（座標がない場合はnil）
func ClinicToPoint(clinic *model.Clinic) *orb.Point {
	if !clinic.HasCoordinates() {
		return nil
	}
	point := orb.Point{*clinic.Lng, *clinic.Lat}
	return &point
}

// ParseBoundingBox "min_lng,min_lat,max_lng,max_lat" 形式の文字列をorb.Boundに変換する
func ParseBoundingBox(bbox string) (orb.Bound, error) {
	coords := strings.Split(bbox, ",")
	if len(coords) != 4 {
		return orb.Bound{}, fmt.Errorf("bboxは4つの座標が必要です: min_lng,min_lat,max_lng,max_lat")
	}

	values := make([]float64, 4)
	for i, c := range coords {
		v, err := strconv.ParseFloat(strings.TrimSpace(c), 64)
		if err != nil {
			return orb.Bound{}, fmt.Errorf("bboxの座標値が数値ではありません: %q", c)
		}
		values[i] = v
	}

	minLng, minLat, maxLng, maxLat := values[0], values[1], values[2], values[3]

	// 入力値の検証
	if minLng >= maxLng || minLat >= maxLat {
		return orb.Bound{}, fmt.Errorf("無効な境界ボックス: min値がmax値以上です")
	}
	if minLng < -180 || maxLng > 180 || minLat < -90 || maxLat > 90 {
		return orb.Bound{}, fmt.Errorf("座標値が有効範囲外です")
	}

	return orb.Bound{
		Min: orb.Point{minLng, minLat},
		Max: orb.Point{maxLng, maxLat},
	}, nil
}

// FilterClinicsInBound 境界ボックス内に座標を持つクリニックのみを抽出する
func FilterClinicsInBound(clinics []model.Clinic, bound orb.Bound) []model.Clinic {
	var inside []model.Clinic
	for _, clinic := range clinics {
		point := ClinicToPoint(&clinic)
		if point != nil && bound.Contains(*point) {
			inside = append(inside, clinic)
		}
	}
	return inside
}
