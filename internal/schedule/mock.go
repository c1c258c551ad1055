package schedule

import "time"

// MockSchedule is the deterministic synthetic schedule used when every real
// source fails. Kickoff times are offsets from now, so the shape is stable
// regardless of when it runs: two events already started (live), the rest
// upcoming. Literal clock values differ run to run; tests assert shape only.
func MockSchedule(now time.Time) Schedule {
	at := func(offsetMinutes int) string {
		return Clock(now.Add(time.Duration(offsetMinutes) * time.Minute))
	}
	day := DayKey(now)
	return Schedule{
		day: DaySchedule{
			"Soccer": []Event{
				{
					Time:  at(-45),
					Title: "Arsenal vs Manchester City",
					Channels: []Channel{
						{Name: "Sky Sports Main Event", ID: "302", LogoURL: "logos/sky_sports.png"},
						{Name: "beIN Sports 1", ID: "491", LogoURL: "logos/bein_sports.png"},
					},
				},
				{
					Time:  at(-10),
					Title: "Real Madrid vs Barcelona",
					Channels: []Channel{
						{Name: "DAZN 1", ID: "401", LogoURL: "logos/dazn.png"},
					},
				},
				{
					Time:  at(60),
					Title: "PSG vs Lyon",
					Channels: []Channel{
						{Name: "Canal+ Sport", ID: "501", LogoURL: "logos/canal_plus.png"},
					},
				},
				{
					Time:  at(120),
					Title: "Juventus vs Inter Milan",
					Channels: []Channel{
						{Name: "Sky Sport Italia", ID: "601", LogoURL: "logos/sky_italia.png"},
					},
				},
			},
			"UEFA Champions League": []Event{
				{
					Time:  at(180),
					Title: "Liverpool vs AC Milan",
					Channels: []Channel{
						{Name: "TNT Sports 1", ID: "701", LogoURL: "logos/tnt_sports.png"},
					},
				},
			},
		},
	}
}

// MockChannels is the static channel list served when the official channels
// endpoint is not configured or unreachable.
func MockChannels() []Channel {
	return []Channel{
		{Name: "Sky Sports Main Event", ID: "302", LogoURL: "logos/sky_sports.png"},
		{Name: "beIN Sports 1", ID: "491", LogoURL: "logos/bein_sports.png"},
		{Name: "beIN Sports 2", ID: "492", LogoURL: "logos/bein_sports.png"},
		{Name: "DAZN 1", ID: "401", LogoURL: "logos/dazn.png"},
		{Name: "Canal+ Sport", ID: "501", LogoURL: "logos/canal_plus.png"},
		{Name: "TNT Sports 1", ID: "701", LogoURL: "logos/tnt_sports.png"},
		{Name: "BT Sport 1", ID: "901", LogoURL: "logos/bt_sport.png"},
	}
}
