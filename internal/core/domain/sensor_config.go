package domain

type DetailRow struct {
	Label string
	Value string
}

type SensorConfig struct {
	Title   string
	Icon    string
	Color   string
	Details []DetailRow
}

var sensorConfigs = map[ChannelId]SensorConfig{
	CHANNEL_WATER: {
		Title: "Nivel de Agua",
		Icon:  "💧",
		Color: "#667eea",
		Details: []DetailRow{
			{Label: "Capacidad total", Value: "3000 ml"},
			{Label: "Cantidad actual", Value: "2250 ml"},
			{Label: "Objetivo diario", Value: "3000 ml"},
		},
	},
	CHANNEL_PH: {
		Title: "Nivel pH",
		Icon:  "🧪",
		Color: "#f5576c",
		Details: []DetailRow{
			{Label: "Rango óptimo", Value: "6.0 - 7.5"},
			{Label: "Estado", Value: "Normal"},
			{Label: "Última calibración", Value: "Hace 2 días"},
		},
	},
	CHANNEL_IRRIGATION: {
		Title: "Sistema de Irrigación",
		Icon:  "🚿",
		Color: "#00f2fe",
		Details: []DetailRow{
			{Label: "Estado", Value: "Activo"},
			{Label: "Próximo ciclo", Value: "15 min"},
			{Label: "Frecuencia", Value: "Cada 2 hrs"},
		},
	},
	CHANNEL_TEMPERATURE: {
		Title: "Temperatura del Agua",
		Icon:  "🌡️",
		Color: "#fee140",
		Details: []DetailRow{
			{Label: "Rango óptimo", Value: "20-24°C"},
			{Label: "Estado", Value: "Óptima"},
			{Label: "Tendencia", Value: "Estable"},
		},
	},
	CHANNEL_NUTRIENT: {
		Title: "Nivel de Nutrientes",
		Icon:  "⚗️",
		Color: "#30cfd0",
		Details: []DetailRow{
			{Label: "Cantidad", Value: "850 ml"},
			{Label: "Estado", Value: "Bueno"},
			{Label: "Reponer en", Value: "5 días"},
		},
	},
	CHANNEL_LIGHT: {
		Title: "Sistema de Iluminación",
		Icon:  "💡",
		Color: "#ffd89b",
		Details: []DetailRow{
			{Label: "Estado", Value: "Encendido"},
			{Label: "Intensidad", Value: "80%"},
			{Label: "Tiempo activo", Value: "8 hrs"},
		},
	},
}

// SensorConfigFor returns a copy of the static configuration of a channel.
func SensorConfigFor(id ChannelId) (SensorConfig, bool) {
	cfg, ok := sensorConfigs[id]
	if !ok {
		return SensorConfig{}, false
	}
	details := make([]DetailRow, len(cfg.Details))
	copy(details, cfg.Details)
	cfg.Details = details
	return cfg, true
}
