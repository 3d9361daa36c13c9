// README: Intent-driven state machine dispatching one message at a time.
package session

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"atlas/internal/agent"
	"atlas/internal/tracing"
)

// Classifier produces an intent record for a user message.
type Classifier interface {
	Classify(ctx context.Context, model, message string) agent.IntentRecord
}

// Searcher gathers category search results for a trip request.
type Searcher interface {
	Run(ctx context.Context, model, request string) string
}

// Planner creates and revises itineraries.
type Planner interface {
	Create(ctx context.Context, model, request, searchResults string) string
	Revise(ctx context.Context, model, current, feedback string, history []agent.Message) string
}

// Communicator produces user-facing prose.
type Communicator interface {
	Format(ctx context.Context, model, content, contentType string) string
	ClarifyingQuestions(ctx context.Context, model, request string, missing []string) string
	Summarize(ctx context.Context, model, itinerary string) string
	Respond(ctx context.Context, model, message, extraContext string, history []agent.Message) string
}

// Orchestrator drives the conversation state machine. One instance serves all
// sessions; per-session state lives entirely in *Session.
type Orchestrator struct {
	intents  Classifier
	searcher Searcher
	planner  Planner
	comms    Communicator
	tracer   *tracing.Tracer
	log      *zap.Logger
}

func NewOrchestrator(intents Classifier, searcher Searcher, planner Planner, comms Communicator, tracer *tracing.Tracer, log *zap.Logger) *Orchestrator {
	return &Orchestrator{
		intents:  intents,
		searcher: searcher,
		planner:  planner,
		comms:    comms,
		tracer:   tracer,
		log:      log,
	}
}

// ProcessMessage classifies the message and dispatches on (previous phase,
// intent kind, itinerary presence). Every branch appends both the user message
// and the reply to history. A panic anywhere downstream becomes an apology
// reply; the phase stays wherever the failing step left it.
func (o *Orchestrator) ProcessMessage(ctx context.Context, sess *Session, userMessage string) (reply string) {
	ctx, tr := o.tracer.StartTrace(ctx, "travel_agent")
	status := "success"
	defer func() {
		if r := recover(); r != nil {
			o.log.Error("message dispatch panicked",
				zap.String("session_id", sess.ID), zap.Any("panic", r))
			status = "error"
			reply = "I apologize, something went wrong while handling that. Please try again."
			sess.append("assistant", reply)
		}
		o.tracer.End(tr, status)
	}()

	sess.append("user", userMessage)

	// The classifier sees whether an itinerary is already in play; "make it
	// cheaper" means something different mid-review than on a first message.
	classifierInput := userMessage
	if sess.Itinerary != "" {
		classifierInput = fmt.Sprintf("%s\n\n[Context: User already has an itinerary being planned. Current state: %s]",
			userMessage, sess.Phase)
	}
	intent := o.intents.Classify(ctx, sess.Model, classifierInput)

	prev := sess.Phase
	switch {
	case intent.Intent == agent.IntentNewTrip || prev == PhaseGreeting:
		reply = o.handleNewTrip(ctx, sess, userMessage, intent, prev)
	case intent.Intent == agent.IntentModifyTrip || intent.Intent == agent.IntentProvideFeedback:
		reply = o.handleModification(ctx, sess, userMessage, intent, prev)
	case intent.Intent == agent.IntentAskQuestion:
		reply = o.handleQuestion(ctx, sess, userMessage)
	case intent.Intent == agent.IntentConfirm:
		reply = o.handleConfirmation(ctx, sess)
	case intent.Intent == agent.IntentReject:
		reply = "I understand. Let me know what specific changes you'd like to make, or if you'd prefer to start fresh with different options."
	default:
		if sess.Itinerary != "" && prev == PhaseReviewing {
			// Unclear while reviewing an itinerary reads as implicit feedback.
			reply = o.handleModification(ctx, sess, userMessage, agent.IntentRecord{Feedback: userMessage}, prev)
		} else {
			reply = o.handleGeneral(ctx, sess, userMessage)
		}
	}

	sess.append("assistant", reply)
	return reply
}

// handleNewTrip runs the search-then-plan pipeline, or asks clarifying questions
// when the first message lacks destination or dates.
func (o *Orchestrator) handleNewTrip(ctx context.Context, sess *Session, userMessage string, intent agent.IntentRecord, prev Phase) string {
	sess.OriginalRequest = userMessage

	var missing []string
	if intent.Destination == "" {
		missing = append(missing, "destination")
	}
	if intent.Dates == "" {
		missing = append(missing, "travel dates")
	}

	if len(missing) > 0 && prev == PhaseGreeting {
		sess.Phase = PhaseGatheringInfo
		questions := o.comms.ClarifyingQuestions(ctx, sess.Model, userMessage, missing)
		return fmt.Sprintf("I'd love to help you plan your trip! %s", questions)
	}

	sess.Phase = PhaseSearching
	sess.SearchResults = o.searcher.Run(ctx, sess.Model, userMessage)

	sess.Phase = PhasePlanning
	sess.Itinerary = o.planner.Create(ctx, sess.Model, userMessage, sess.SearchResults)

	sess.Phase = PhaseReviewing
	reply := o.comms.Format(ctx, sess.Model, sess.Itinerary, "itinerary")
	return reply + "\n\nWould you like me to modify anything in this plan? Feel free to share your feedback!"
}

// handleModification revises the itinerary from feedback, redirecting to the
// new-trip path when no itinerary exists yet.
func (o *Orchestrator) handleModification(ctx context.Context, sess *Session, userMessage string, intent agent.IntentRecord, prev Phase) string {
	if sess.Itinerary == "" {
		return o.handleNewTrip(ctx, sess, userMessage, intent, prev)
	}

	sess.Phase = PhaseModifying
	feedback := intent.Feedback
	if feedback == "" {
		feedback = userMessage
	}

	sess.Itinerary = o.planner.Revise(ctx, sess.Model, sess.Itinerary, feedback, sess.History)
	sess.Phase = PhaseReviewing

	reply := o.comms.Format(ctx, sess.Model, sess.Itinerary, "itinerary")
	return reply + "\n\nI've updated the itinerary based on your feedback. What do you think?"
}

func (o *Orchestrator) handleQuestion(ctx context.Context, sess *Session, userMessage string) string {
	itinerary := sess.Itinerary
	if itinerary == "" {
		itinerary = "No itinerary created yet"
	}
	searchResults := sess.SearchResults
	if searchResults == "" {
		searchResults = "No searches performed yet"
	}
	context := fmt.Sprintf("Current itinerary: %s\nSearch results: %s", itinerary, searchResults)
	return o.comms.Respond(ctx, sess.Model, userMessage, context, sess.History)
}

func (o *Orchestrator) handleConfirmation(ctx context.Context, sess *Session) string {
	if sess.Itinerary == "" {
		return "Great! What trip would you like to plan?"
	}
	summary := o.comms.Summarize(ctx, sess.Model, sess.Itinerary)
	return fmt.Sprintf("Excellent! Your trip is all set!\n\n%s\n\nHave a wonderful trip! Feel free to come back if you need any changes or want to plan another adventure.", summary)
}

func (o *Orchestrator) handleGeneral(ctx context.Context, sess *Session, userMessage string) string {
	itinerary := "None"
	if sess.Itinerary != "" {
		itinerary = clip(sess.Itinerary, 500)
	}
	context := fmt.Sprintf("Current state: %s\nCurrent itinerary: %s", sess.Phase, itinerary)
	return o.comms.Respond(ctx, sess.Model, userMessage, context, sess.History)
}

func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
