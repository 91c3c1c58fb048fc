package telegram

const (
	welcomeMessage = "👋 Welcome to Schedule Planner!\n\n" +
		"Send me your plans as text, a photo of a timetable or a voice note and I will:\n" +
		"• 📅 create the events in Google Calendar\n" +
		"• ✅ add the to-dos to Google Tasks\n\n" +
		"Example: \"Lunch with Sam tomorrow at 1pm, submit the report by Friday\""

	helpMessage = "How to use:\n\n" +
		"Describe what you need to do in plain words. Times like \"tomorrow at 3pm\" or \"next Monday\" are fine.\n" +
		"Photos of schedules and voice notes work too.\n\n" +
		"Commands:\n/start - introduction\n/help - this message"

	processingMessage = "⏳ Processing..."
)
