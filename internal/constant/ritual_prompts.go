package constant

// Prompts for the state classifier and the step generator. Both demand pure
// JSON output; the pkg/ai parsers strip markdown fences before decoding.

const StateAnalysisPromptV1 = `You are an AI analyzing user input to determine their mental state from the following predefined states: Anxiety and Overwhelm, Low Motivation / Apathy, Burnout, Sadness, Self-Doubt or Insecurity, Social Withdrawal, Procrastination Loop, Inner Critic or Shame, Fear of Failure, Decision Fatigue.

Task: Analyze the user's input text to identify the most relevant mental state. Return a JSON object with the identified state and a confidence score (0.0 to 1.0).

Instructions:
- Interpret the user's input for emotional cues, tone, and context.
- Match the input to one of the predefined states.
- Assign a confidence score (e.g., 0.9 for strong match, 0.5 for unclear).
- If unclear, return {"state": "unknown", "confidence": 0.5}.
- Return only valid JSON with keys "state" and "confidence". No prose, no markdown.

Input: %s

JSON Response:`

const StepGenerationPromptV1 = `You are an AI generating one step of a personalized well-being ritual.

User's mental state: %s
Step type: %s
Position in the ritual: step %d

Write a single, concrete, doable exercise of the given step type that helps someone in this mental state. Keep the content to 2-4 sentences of direct second-person instruction.
%s
Return only valid JSON with keys "title", "content" and "step_type". The "step_type" value must be exactly "%s". No prose, no markdown.

JSON Response:`

// StepGenerationAvoidTitlesV1 is injected into the generation prompt when
// earlier steps exist, to steer the model away from near-duplicate content.
const StepGenerationAvoidTitlesV1 = `Earlier steps in this ritual are titled: %s. Do not repeat or closely paraphrase them.
`
