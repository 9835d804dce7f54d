package model

// VideoEntry は動画一覧APIのレスポンス要素を表す。
// URLは1時間で失効する署名付きURL。Dateは最終更新時刻のRFC3339表現。
type VideoEntry struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Date string `json:"date"`
}
