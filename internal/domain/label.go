package domain

// Label is the match label advertised for room-code and quick-match queries.
type Label struct {
	Open  bool   `json:"open"`
	Game  string `json:"game"`
	Phase string `json:"phase"`
	Code  string `json:"code"`
}

// ComputeLabel derives the advertised label from session state.
func ComputeLabel(g *Game) Label {
	open := g.Phase == PhaseWaiting && len(g.PlayerOrder) < NumPlayers
	return Label{Open: open, Game: "callbreak", Phase: string(g.Phase), Code: g.RoomCode}
}
