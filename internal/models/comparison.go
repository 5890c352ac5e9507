package models

// ChartItem сегмент круговой диаграммы.
type ChartItem struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// Comparison данные страницы сравнения расходов.
type Comparison struct {
	AmountData     []ChartItem `json:"amount_data"`
	CategoryData   []ChartItem `json:"category_data"`
	MonthlyAverage int         `json:"monthly_average"`
}
