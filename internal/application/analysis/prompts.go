package analysis

// Prompt templates. {statistics} is replaced with the rendered statistics
// before the request is sent.
const (
	loanDistributionPrompt = "The dataset contains information about the distribution of loan amounts (loan_amnt). " +
		"Analyze the following statistical summary and provide an insightful interpretation:\n\n" +
		"{statistics}\n\n" +
		"In your analysis, include the following points:\n" +
		"1. The total number of loans in the dataset.\n" +
		"2. The range of loan amounts (minimum and maximum values).\n" +
		"3. The average (mean) loan amount and what it suggests about the dataset.\n" +
		"4. Key percentiles (25th, 50th/median, and 75th) and how they reflect the data distribution.\n" +
		"5. Any significant trends or clusters in the data, such as common ranges or outliers.\n" +
		"6. How the loan amounts are distributed (skewed, uniform or normal).\n\n" +
		"Write the summary in a simple manner, suitable for someone without a technical background."

	gradeDefaultsPrompt = "The dataset contains information about loan grades and their default counts. " +
		"Below are the default counts for each grade:\n\n" +
		"{statistics}\n\n" +
		"Using this information, provide a concise summary that includes:\n" +
		"1. The grade most frequently associated with defaults.\n" +
		"2. How the distribution of defaults varies across grades.\n" +
		"3. Any notable patterns or observations from the data.\n\n" +
		"Make the summary simple and easy to understand for someone without a technical background."

	stateDefaultsPrompt = "The dataset contains information about state-wise loan distributions and default rates. " +
		"Here are the calculated default rates for each state:\n\n" +
		"{statistics}\n\n" +
		"Using this information, provide a concise summary that includes:\n" +
		"1. The states with the highest default rates and their rates.\n" +
		"2. The states with the lowest default rates and their rates.\n" +
		"3. Observations on how default rates vary across states.\n" +
		"4. Any significant trends or clusters observed in the data.\n\n" +
		"Write the summary in simple terms for easy understanding."

	riskFactorsPrompt = "Based on the following correlations between loan attributes and defaults (is_bad=1):\n\n" +
		"{statistics}\n\n" +
		"Analyze and identify the factors contributing to high-default loans and provide insights on how these factors " +
		"could be used to refine risk assessment models. Include actionable recommendations for improving creditworthiness evaluation."

	temporalTrendsPrompt = "The dataset contains yearly trends in loan defaults based on the column 'earliest_cr_line'.\n\n" +
		"Yearly Default Counts:\n{statistics}\n\n" +
		"Analyze the trends and provide insights, including:\n" +
		"1. Significant increases or decreases in defaults over the years.\n" +
		"2. Possible external factors or events, such as economic downturns, influencing the trends.\n" +
		"3. One additional analysis or hypothesis related to the dataset, for example correlations with unemployment rates " +
		"or underserved user segments.\n" +
		"4. Why this additional analysis is important, with a preliminary exploration plan."

	finalReportPrompt = "Provide a concise analysis report based on the following findings:\n\n" +
		"{statistics}\n\n" +
		"Summarize the key insights and provide actionable recommendations. " +
		"Keep the summary concise and easy to understand."
)
