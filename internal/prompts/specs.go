package prompts

const qualitySpec = `Respond with a JSON object matching this exact structure:

{
  "readable": true,
  "issues": ["<issue1>", "<issue2>"],
  "confidence": "<HIGH|MEDIUM|LOW>"
}

Field constraints:
- readable: Whether the cheque image is clear enough for automated field
  extraction. False only when one or more key fields cannot be recovered.
- issues: Specific quality problems observed (e.g., "glare over amount box",
  "image rotated roughly 15 degrees"). Empty array when the image is clean.
- confidence: Certainty of the readability judgment. HIGH = unambiguous,
  MEDIUM = borderline quality, LOW = severely degraded image.

Behavioral constraints:
- Always respond with valid JSON, no markdown fencing
- Assess quality only; do not extract or report field values`

const extractSpec = `Respond with a JSON object matching this exact structure:

{
  "payee": "<name>",
  "amount": 0.0,
  "amount_in_words": "<written amount>",
  "date": "<DDMMYYYY>",
  "account_number": "<digits>",
  "cheque_number": "<digits>",
  "bank_name": "<name>",
  "micr_line": "<raw MICR text>"
}

Field constraints:
- payee: Exactly as written on the "Pay to the order of" line.
- amount: Numeric courtesy amount as a JSON number, no currency symbols.
- amount_in_words: The legal amount line exactly as written.
- date: Digits only in DDMMYYYY order. Preserve a 6-digit year form as
  written (DDMMYY) when the century is not printed.
- account_number: Digits only. Derive from the MICR line if not printed
  separately.
- cheque_number, bank_name: As printed on the cheque.
- micr_line: Full MICR text, transcribing transit symbols as spaces.

Behavioral constraints:
- Always respond with valid JSON, no markdown fencing
- Use empty string (or 0.0 for amount) for genuinely absent fields
- Never invent or autocorrect values`

const locateSpec = `Respond with a JSON object matching this exact structure:

{
  "found": true,
  "bbox": [0.0, 0.0, 0.0, 0.0]
}

Field constraints:
- found: Whether a handwritten signature is present on the cheque.
- bbox: [x_min, y_min, x_max, y_max] as fractions of image width (x) and
  height (y), each between 0.0 and 1.0, tightly bounding the full
  signature stroke. All zeros when found is false.

Behavioral constraints:
- Always respond with valid JSON, no markdown fencing
- Ensure x_min < x_max and y_min < y_max when found is true`

const validateSpec = `Respond with a JSON object matching this exact structure:

{
  "consistent": true,
  "issues": ["<issue1>", "<issue2>"]
}

Field constraints:
- consistent: Whether the extracted fields agree with one another.
- issues: Each inconsistency found, naming the fields involved (e.g.,
  "legal amount 'five hundred' disagrees with courtesy amount 5000.00").
  Empty array when consistent is true.

Behavioral constraints:
- Always respond with valid JSON, no markdown fencing
- Flag discrepancies; never resolve them silently`

const tamperSpec = `Respond with a JSON object matching this exact structure:

{
  "tampering_detected": false,
  "findings": ["<finding1>", "<finding2>"],
  "confidence": "<HIGH|MEDIUM|LOW>"
}

Field constraints:
- tampering_detected: Whether any evidence of alteration is present.
- findings: Each specific indicator observed, naming the affected field
  and the evidence (e.g., "amount box shows overwritten digit with
  different ink density"). Empty array when no tampering is detected.
- confidence: Certainty of the tampering judgment.

Behavioral constraints:
- Always respond with valid JSON, no markdown fencing
- Report observable evidence only; normal handwriting variation within
  one writer's style is not tampering`

const behaviorSpec = `Respond with a JSON object matching this exact structure:

{
  "anomalous": false,
  "anomalies": ["<anomaly1>", "<anomaly2>"]
}

Field constraints:
- anomalous: Whether the transaction deviates from the account profile.
- anomalies: Each deviation with its reasoning (e.g., "amount 9500.00
  exceeds historical maximum 4000.00"). Empty array when the transaction
  fits the established pattern.

Behavioral constraints:
- Always respond with valid JSON, no markdown fencing
- Compare only against the profile provided in the prompt`

const signatureSpec = `Respond with a JSON object matching this exact structure:

{
  "match": true,
  "confidence": "<HIGH|MEDIUM|LOW>",
  "rationale": "<explanation>"
}

Field constraints:
- match: Whether the cheque signature was plausibly produced by the same
  writer as the reference signature.
- confidence: Certainty of the comparison. HIGH = clear structural
  agreement or disagreement, MEDIUM = mixed indicators, LOW = image
  quality limits the comparison.
- rationale: The specific structural characteristics that drove the
  judgment.

Behavioral constraints:
- Always respond with valid JSON, no markdown fencing
- The first image is the cheque signature, the second is the reference`

const lienSpec = `Respond with a JSON object matching this exact structure:

{
  "lien_likely": false,
  "probability": 0.0,
  "rationale": "<explanation>"
}

Field constraints:
- lien_likely: Whether a lien or hold is more likely than not.
- probability: Estimated likelihood between 0.0 and 1.0.
- rationale: The dominant factors behind the estimate, referencing the
  cheque data and fraud findings provided.

Behavioral constraints:
- Always respond with valid JSON, no markdown fencing
- lien_likely must agree with probability (true only when >= 0.5)`

const summarySpec = `Respond with a plain text narrative report.

Structure the report as short paragraphs covering, in order: the extracted
cheque details and final outcome, each fraud check and its result, the
anomalies recorded with their influence on the outcome, and the lien
assessment when one was made.

Behavioral constraints:
- Plain text only; no JSON, no markdown fencing or headers
- Reference only facts present in the provided audit trail
- Keep the report under 400 words`

var specs = map[Stage]string{
	StageQuality:   qualitySpec,
	StageExtract:   extractSpec,
	StageLocate:    locateSpec,
	StageValidate:  validateSpec,
	StageTamper:    tamperSpec,
	StageBehavior:  behaviorSpec,
	StageSignature: signatureSpec,
	StageLien:      lienSpec,
	StageSummary:   summarySpec,
}

// Spec returns the hardcoded specification for a workflow stage.
// Specifications define the expected output format and behavioral constraints.
// Returns ErrInvalidStage if the stage is not recognized.
func Spec(stage Stage) (string, error) {
	text, ok := specs[stage]
	if !ok {
		return "", ErrInvalidStage
	}
	return text, nil
}
