package topics

const (
	// Jogos
	GameFinal = "game_final"

	// Liquidação
	BetSettled = "bet_settled"

	// DLQs
	GameFinalDLQ = "game_final_dlq"
)
