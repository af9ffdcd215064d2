package config

var DefaultConfig Config
var DefaultTheme Theme

func init() {
	DefaultTheme = Theme{
		DrawLastMoveBackground: true,
		Colors: ConfigColors{
			LightSquare:         223,
			DarkSquare:          94,
			LightSquareSelected: 181,
			DarkSquareSelected:  131,
			ValidMove:           77,
			PickedSquare:        109,
			WhitePiece:          255,
			BlackPiece:          232,
			LastMove:            179,
		},
		Symbols: ConfigSymbols{
			King:   'K',
			Queen:  'Q',
			Rook:   'R',
			Bishop: 'B',
			Knight: 'N',
			Pawn:   'P',
		},
	}

	DefaultConfig = Config{
		Theme: DefaultTheme,
		Engine: EngineConfig{
			ClockSeconds: 600,
			LogLevel:     "info",
			TickMillis:   50,
		},
	}
}
