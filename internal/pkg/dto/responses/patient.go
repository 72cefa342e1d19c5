package responses

type ConsentDocument struct {
	PatientID string `json:"patient_id"`
	ObjectKey string `json:"object_key"`
	URL       string `json:"url"`
	ExpiresIn int    `json:"expires_in_seconds"`
}
