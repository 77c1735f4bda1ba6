package match

// TeamStats are the aggregate counters of one side.
type TeamStats struct {
	Goals         int `json:"goals"`
	Possession    int `json:"possession"`
	Chances       int `json:"chances"`
	Shots         int `json:"shots"`
	ShotsOnTarget int `json:"shots_on_target"`
	Saves         int `json:"saves"`
	Corners       int `json:"corners"`
	Fouls         int `json:"fouls"`
	YellowCards   int `json:"yellow_cards"`
	RedCards      int `json:"red_cards"`
}

type PlayerStats struct {
	Side          Side   `json:"side"`
	Name          string `json:"name"`
	Goals         int    `json:"goals"`
	Assists       int    `json:"assists"`
	Shots         int    `json:"shots"`
	ShotsOnTarget int    `json:"shots_on_target"`
	YellowCards   int    `json:"yellow_cards"`
	RedCards      int    `json:"red_cards"`
	Saves         int    `json:"saves"`
	MinutesPlayed int    `json:"minutes_played"`
}

type BoxScore struct {
	Home    TeamStats              `json:"home"`
	Away    TeamStats              `json:"away"`
	Players map[string]PlayerStats `json:"players"`
}

func (b BoxScore) Team(side Side) TeamStats {
	if side == SideAway {
		return b.Away
	}
	return b.Home
}
