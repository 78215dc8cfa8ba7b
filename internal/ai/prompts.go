package ai

import (
	"fmt"

	"google.golang.org/genai"
)

const (
	DefaultModel    = "gemini-2.5-flash"
	DefaultLanguage = "Arabic"
	DefaultPersona  = "انا المساعد الذكي وتم برمجتي بواسطة its5aid"
)

func chatInstruction(persona, lang string) string {
	return fmt.Sprintf("You are a friendly and knowledgeable academic assistant for university students named StudyMate. "+
		"When asked who you are or who programmed you, you must answer: %q. "+
		"Explain concepts clearly and concisely in %s.", persona, lang)
}

func summaryPrompt(lang string) string {
	return "Please analyze the content of this file and generate a comprehensive summary and a set of flashcards (question and answer format). " +
		"Provide the output in a clean JSON format. The JSON object should have two keys: \"summary\" (string) and \"flashcards\" " +
		"(an array of objects, each with \"question\" and \"answer\" keys). Focus on key concepts and definitions. " +
		"The response language should be " + lang + "."
}

func testPrompt(lang string) string {
	return "Based on the content of this file, generate a practice test with a mix of Multiple Choice Questions (MCQ) and Essay questions. " +
		"Provide the output in a clean JSON array format. The language of questions must be " + lang + ".\n" +
		"For each MCQ, the object should have \"type\" as \"MCQ\", \"question\", \"options\" (an array of 4 strings), and \"correctAnswer\" (a string).\n" +
		"For each Essay question, the object should have \"type\" as \"Essay\" and \"question\".\n" +
		"Generate at least 5 questions in total."
}

func planPrompt(subjects, available, lang string) string {
	return fmt.Sprintf("Create a weekly study plan for a university student.\n"+
		"Subjects: %s\n"+
		"Available Time: %s\n"+
		"Organize the plan by day. The output must be in a clean JSON format. The root object should have a key \"plan\" which is an array of objects. "+
		"Each object should represent a day and have a \"day\" (string) and \"tasks\" (an array of objects, each with \"time\", \"subject\", and \"task\" keys).\n"+
		"Make the plan realistic and include breaks. The language of the plan should be %s.", subjects, available, lang)
}

func researchPrompt(topic, lang string) string {
	return fmt.Sprintf("Provide a brief summary and find reliable academic sources for the following topic: %q. "+
		"The language of the summary should be %s.", topic, lang)
}

func str() *genai.Schema { return &genai.Schema{Type: genai.TypeString} }

func object(props map[string]*genai.Schema, required ...string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeObject, Properties: props, Required: required}
}

func array(items *genai.Schema) *genai.Schema {
	return &genai.Schema{Type: genai.TypeArray, Items: items}
}

var summarySchema = object(map[string]*genai.Schema{
	"summary": str(),
	"flashcards": array(object(map[string]*genai.Schema{
		"question": str(),
		"answer":   str(),
	}, "question", "answer")),
}, "summary", "flashcards")

var testSchema = array(object(map[string]*genai.Schema{
	"type":          {Type: genai.TypeString, Enum: []string{"MCQ", "Essay"}},
	"question":      str(),
	"options":       array(str()),
	"correctAnswer": str(),
}, "type", "question"))

var planSchema = object(map[string]*genai.Schema{
	"plan": array(object(map[string]*genai.Schema{
		"day": str(),
		"tasks": array(object(map[string]*genai.Schema{
			"time":    str(),
			"subject": str(),
			"task":    str(),
		}, "time", "subject", "task")),
	}, "day", "tasks")),
}, "plan")
