package executor

// decompositionPrompt asks the text-generation capability to break an
// objective into a numbered list of subtasks.
const decompositionPrompt = `Break the following objective into a short list of concrete subtasks.

Objective:
%s

Return a numbered list, one subtask per line, in the order the work
would naturally happen. Keep each subtask to a single sentence. Do not
include any other text.

Example:
1. Research existing solutions
2. Analyze the findings
3. Write a summary report`

// taskPrompt wraps a single subtask for execution.
const taskPrompt = `Complete the following subtask as part of a larger plan.

Overall objective: %s

Subtask: %s

Respond with the result of the subtask only.`

// summaryPrompt asks for one synthesized summary over the full transcript.
const summaryPrompt = `Summarize the outcome of this plan execution in a few sentences.

Objective: %s

Task transcript:
%s

Mention what was accomplished and, if anything failed, what remains unfinished.`

// replanPrompt asks for a fresh decomposition informed by what happened.
const replanPrompt = `A previous plan for this objective failed partway. Produce a new numbered list of subtasks for a fresh attempt.

Objective:
%s

Original subtasks:
%s

Completed:
%s

Failed:
%s

Return only the new numbered list, one subtask per line.`
