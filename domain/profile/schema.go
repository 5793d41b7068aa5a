// Package profile defines the player profile persisted in the "profile"
// game-save container.
package profile

//go:generate go run ../../cmd/savegen -root .

// Container and display names used for profile saves.
const (
	ContainerName = "profile"
	DisplayName   = "Player Profile"
)

// PlayerProfile is a player's persisted progress.
// DisplayName is shown in UIs only and never saved.
type PlayerProfile struct {
	Score        int32   `json:"score"`
	Level        int16   `json:"level"`
	Experience   int64   `json:"experience"`
	Coins        uint32  `json:"coins"`
	PlayTimeSecs uint64  `json:"play_time_secs"`
	Volume       float32 `json:"volume"`
	Accuracy     float64 `json:"accuracy"`
	Tutorial     bool    `json:"tutorial_done" save:"TutorialDone"`
	Nickname     string  `json:"nickname"`
	DisplayName  string  `json:"display_name" save:"-"`
}
