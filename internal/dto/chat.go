package dto

// ChatMessage is one turn of the conversation sent to POST /ai/explain.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ExplainRequest is the body of POST /ai/explain.
type ExplainRequest struct {
	Messages []ChatMessage `json:"messages"`
}

// ExplainResponse is the body returned by POST /ai/explain. Quiz and
// QuizTopic are set only when the message was classified as a quiz request.
type ExplainResponse struct {
	Answer    string                 `json:"answer"`
	Quiz      []QuizQuestionResponse `json:"quiz,omitempty"`
	QuizTopic string                 `json:"quiz_topic,omitempty"`
}
