package dto

// QuizGenerationRequest is the request body for POST /quiz/mcq and
// POST /quiz/tf.
// @Description Quiz generation parameters
type QuizGenerationRequest struct {
	Context string   `json:"context"`
	N       int      `json:"n"`
	Exclude []string `json:"exclude,omitempty"`
	Topics  []string `json:"topics,omitempty"`
}

// Question is one generated quiz item in the API response.
type Question struct {
	Type     string   `json:"type"`
	Question string   `json:"question"`
	Choices  []string `json:"choices,omitempty"`
	Answer   string   `json:"answer"`
	Explain  string   `json:"explain,omitempty"`
	Topic    string   `json:"topic,omitempty"`
}

// QuizGenerationResponse holds the accepted questions, possibly fewer
// than requested when the retry budget ran out.
type QuizGenerationResponse struct {
	Questions []Question `json:"questions"`
}

// TopicsRequest is the request body for POST /quiz/topics.
type TopicsRequest struct {
	Context string `json:"context"`
}

// TopicsResponse lists extracted topic hints.
type TopicsResponse struct {
	Topics []string `json:"topics"`
}
