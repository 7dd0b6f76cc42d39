package model

import "strings"

// USState アメリカの州コードと州名のペア
type USState struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// USStates アメリカの州一覧（州コードの検証や表示名の解決に使用）
var USStates = []USState{
	{Code: "AL", Name: "Alabama"},
	{Code: "AK", Name: "Alaska"},
	{Code: "AZ", Name: "Arizona"},
	{Code: "AR", Name: "Arkansas"},
	{Code: "CA", Name: "California"},
	{Code: "CO", Name: "Colorado"},
	{Code: "CT", Name: "Connecticut"},
	{Code: "DE", Name: "Delaware"},
	{Code: "DC", Name: "District of Columbia"},
	{Code: "FL", Name: "Florida"},
	{Code: "GA", Name: "Georgia"},
	{Code: "HI", Name: "Hawaii"},
	{Code: "ID", Name: "Idaho"},
	{Code: "IL", Name: "Illinois"},
	{Code: "IN", Name: "Indiana"},
	{Code: "IA", Name: "Iowa"},
	{Code: "KS", Name: "Kansas"},
	{Code: "KY", Name: "Kentucky"},
	{Code: "LA", Name: "Louisiana"},
	{Code: "ME", Name: "Maine"},
	{Code: "MD", Name: "Maryland"},
	{Code: "MA", Name: "Massachusetts"},
	{Code: "MI", Name: "Michigan"},
	{Code: "MN", Name: "Minnesota"},
	{Code: "MS", Name: "Mississippi"},
	{Code: "MO", Name: "Missouri"},
	{Code: "MT", Name: "Montana"},
	{Code: "NE", Name: "Nebraska"},
	{Code: "NV", Name: "Nevada"},
	{Code: "NH", Name: "New Hampshire"},
	{Code: "NJ", Name: "New Jersey"},
	{Code: "NM", Name: "New Mexico"},
	{Code: "NY", Name: "New York"},
	{Code: "NC", Name: "North Carolina"},
	{Code: "ND", Name: "North Dakota"},
	{Code: "OH", Name: "Ohio"},
	{Code: "OK", Name: "Oklahoma"},
	{Code: "OR", Name: "Oregon"},
	{Code: "PA", Name: "Pennsylvania"},
	{Code: "RI", Name: "Rhode Island"},
	{Code: "SC", Name: "South Carolina"},
	{Code: "SD", Name: "South Dakota"},
	{Code: "TN", Name: "Tennessee"},
	{Code: "TX", Name: "Texas"},
	{Code: "UT", Name: "Utah"},
	{Code: "VT", Name: "Vermont"},
	{Code: "VA", Name: "Virginia"},
	{Code: "WA", Name: "Washington"},
	{Code: "WV", Name: "West Virginia"},
	{Code: "WI", Name: "Wisconsin"},
	{Code: "WY", Name: "Wyoming"},
}

// IsValidStateCode 州コードが有効かチェック（大文字小文字無視）
func IsValidStateCode(code string) bool {
	for _, s := range USStates {
		if strings.EqualFold(s.Code, code) {
			return true
		}
	}
	return false
}

// GetStateName 州コードから州名を取得する（見つからない場合は空文字列）
func GetStateName(code string) string {
	for _, s := range USStates {
		if strings.EqualFold(s.Code, code) {
			return s.Name
		}
	}
	return ""
}
