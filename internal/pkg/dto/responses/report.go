package responses

type PatientStatistics struct {
	TotalPatients      int64            `json:"total_patients"`
	TodayPatients      int64            `json:"today_patients"`
	IncompleteRecords  int64            `json:"incomplete_records"`
	GenderDistribution map[string]int64 `json:"gender_distribution"`
	TopDiagnoses       []DiagnosisCount `json:"top_diagnoses"`
}

type DiagnosisCount struct {
	Diagnosis string `json:"diagnosis"`
	Count     int64  `json:"count"`
}

type MonthlyTrends struct {
	Year        int            `json:"year"`
	MonthlyData []MonthlyCount `json:"monthly_data"`
}

type MonthlyCount struct {
	Month     int    `json:"month"`
	MonthName string `json:"month_name"`
	Count     int64  `json:"count"`
}
