// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package reply

import (
	"context"
	"strings"
)

// =============================================================================
// KEYWORD RULES
// =============================================================================

// KeywordRule answers with a fixed reply when the lowercased input
// contains Keyword.
type KeywordRule struct {
	Keyword string
	Reply   string
}

// Matches reports whether the rule applies to input.
func (r KeywordRule) Matches(input string) bool {
	return strings.Contains(strings.ToLower(input), strings.ToLower(r.Keyword))
}

// Rules tries each rule in order and falls back to Fallback when none
// matches. The first matching rule wins.
type Rules struct {
	Rules    []KeywordRule
	Fallback Generator
}

// Generate implements Generator.
func (r *Rules) Generate(ctx context.Context, input string) (string, error) {
	for _, rule := range r.Rules {
		if rule.Matches(input) {
			return rule.Reply, nil
		}
	}
	if r.Fallback == nil {
		return Template{}.Generate(ctx, input)
	}
	return r.Fallback.Generate(ctx, input)
}

// =============================================================================
// FALLBACK TEMPLATE
// =============================================================================

// Template echoes the input verbatim inside a fixed markdown reply.
type Template struct{}

// Generate implements Generator. It never fails.
func (Template) Generate(_ context.Context, input string) (string, error) {
	return templatePrefix + input + templateSuffix, nil
}

const templatePrefix = `I understand you're asking about "`

const templateSuffix = `". Here's a comprehensive response that addresses your query with detailed information and actionable insights.

This is a **markdown-formatted response** that demonstrates:
- Proper formatting capabilities
- *Italic text* for emphasis
- **Bold text** for important points
- Structured lists and organization

Would you like me to elaborate on any specific aspect of this topic?`

// =============================================================================
// CANNED ASSISTANT
// =============================================================================

// NewMock returns the canned assistant: jokes, business plan ideas, and
// the echo template for everything else. It never fails and does not
// wait; wrap it in Delayed to simulate latency.
func NewMock() *Rules {
	return &Rules{
		Rules: []KeywordRule{
			{Keyword: "joke", Reply: JokesReply},
			{Keyword: "business plan", Reply: BusinessPlanReply},
		},
		Fallback: Template{},
	}
}

// JokesReply answers requests containing "joke".
const JokesReply = `Sure! Here are **5 office-friendly jokes** that are lighthearted and safe for the workplace:

1. **Why did the employee get fired from the calendar factory?**
   Because he took a few days off!

2. **Boss:** "You've been late three days this week. Do you know what that means?"
   **Employee:** "It's Wednesday?"

3. **Why don't we tell secrets in the office anymore?**
   Because the cubicles have ears!

4. **I told my boss three companies were after me...**
   So he gave me a raise. Turns out it was the electric company, the gas company, and the water company.

5. **Why did the stapler break up with the paperclip?**
   It found someone more binding.

Want me to tailor some jokes to your specific office culture or industry?`

// BusinessPlanReply answers requests containing "business plan".
const BusinessPlanReply = `Here are **3 innovative business plan ideas** for merging technology with traditional industries:

## 1. **AgriTech Smart Farming Platform**
Combine IoT sensors, AI analytics, and drone technology to optimize crop yields and reduce resource waste. Target small to medium farms with subscription-based monitoring services.

## 2. **HealthTech Remote Monitoring**
Develop wearable devices integrated with telemedicine platforms for chronic disease management, focusing on elderly care and rural healthcare access.

## 3. **EduTech Immersive Learning**
Create VR/AR educational experiences for vocational training, allowing students to practice complex procedures in safe, virtual environments.

Each concept leverages emerging technologies to solve real-world problems while creating scalable business opportunities.`
