package domain

// Slot é uma janela fixa de gravação na planilha do dia. Cada slot
// ocupa sete colunas a partir de StartColumn.
type Slot struct {
	Label       string
	Hour        int
	Minute      int
	StartColumn string
}

// CollectSlots define os sete slots do dia (horário KST) e a coluna
// inicial de cada um. A ordem da lista resolve empates de proximidade.
var CollectSlots = []Slot{
	{Label: "10:00", Hour: 10, StartColumn: "B"},
	{Label: "12:00", Hour: 12, StartColumn: "I"},
	{Label: "14:00", Hour: 14, StartColumn: "P"},
	{Label: "16:00", Hour: 16, StartColumn: "W"},
	{Label: "18:00", Hour: 18, StartColumn: "AD"},
	{Label: "20:00", Hour: 20, StartColumn: "AK"},
	{Label: "22:00", Hour: 22, StartColumn: "AR"},
}

// SlotFieldCount é a quantidade de valores gravados por slot.
const SlotFieldCount = 7
