package openai

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
)

const structureSystem = `You are a CV parser. Extract the candidate profile from the CV text below.
Respond with a single JSON object:
{
  "skills": ["..."],
  "experience": [{"title": "...", "company": "...", "duration": "...", "description": "..."}],
  "education": [{"degree": "...", "institution": "...", "year": "..."}],
  "certifications": ["..."],
  "languages": ["..."]
}
Use empty arrays for sections the CV does not contain. Do not invent entries.`

const extractJobSystem = `You are a job-posting parser. Extract the job description schema from the page text below.
Respond with a single JSON object:
{
  "title": "...",
  "company": "...",
  "seniority": "...",
  "required_skills": ["..."],
  "preferred_skills": ["..."],
  "responsibilities": ["..."],
  "qualifications": ["..."],
  "experience_level": "...",
  "location": "...",
  "salary": "...",
  "benefits": ["..."],
  "culture_signals": ["..."]
}
Leave fields empty when the posting does not state them.`

const gapSystem = `You are a hiring analyst. Compare the candidate profile against the job requirements.
For every required or preferred skill produce a mapping with:
  "skill": the skill name,
  "status": one of "match", "partial", "missing",
  "importance": one of "critical", "important", "nice_to_have"
    (required skills are critical, preferred skills are important unless clearly optional),
  "evidence": short quotes from the CV supporting the status (empty for missing).
Respond with a single JSON object:
{
  "mappings": [...],
  "match_percentage": 0-100,
  "recommendations": ["..."]
}`

const questionSystem = `You are an interview coach. Using the gap analysis, job requirements, and candidate profile,
generate between 8 and 10 interview questions. Target distribution: 40% validating confirmed skills,
35% probing gaps, 25% role-specific scenarios.
Respond with a single JSON object:
{
  "questions": [{
    "id": "",
    "question": "...",
    "type": "behavioral" | "technical" | "scenario",
    "skill": "...",
    "difficulty": "easy" | "medium" | "hard",
    "expected_answer_points": ["..."],
    "follow_ups": ["..."]
  }]
}`

const ocrSystem = `You are an OCR engine. The user message contains a base64-encoded document.
Return only the plain text content of the document, preserving reading order. No commentary.`

func buildStructurePrompt(rawText string) []chatMessage {
	return []chatMessage{
		{Role: "system", Content: structureSystem},
		{Role: "user", Content: rawText},
	}
}

func buildExtractJobPrompt(pageText string) []chatMessage {
	return []chatMessage{
		{Role: "system", Content: extractJobSystem},
		{Role: "user", Content: pageText},
	}
}

func buildGapPrompt(cvContent, jobRequirements json.RawMessage) []chatMessage {
	user := fmt.Sprintf("Candidate profile:\n%s\n\nJob requirements:\n%s", cvContent, jobRequirements)
	return []chatMessage{
		{Role: "system", Content: gapSystem},
		{Role: "user", Content: user},
	}
}

func buildQuestionPrompt(gapAnalysis, jobRequirements, cvContent json.RawMessage) []chatMessage {
	user := fmt.Sprintf("Gap analysis:\n%s\n\nJob requirements:\n%s\n\nCandidate profile:\n%s",
		gapAnalysis, jobRequirements, cvContent)
	return []chatMessage{
		{Role: "system", Content: questionSystem},
		{Role: "user", Content: user},
	}
}

func buildOCRPrompt(data []byte, mimeType string) []chatMessage {
	user := fmt.Sprintf("mime-type: %s\n%s", mimeType, base64.StdEncoding.EncodeToString(data))
	return []chatMessage{
		{Role: "system", Content: ocrSystem},
		{Role: "user", Content: user},
	}
}
