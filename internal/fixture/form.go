package fixture

// formHTML mirrors the registration form the scenario targets: the same
// element ids, dropdown labels and echo format.
const formHTML = `<!DOCTYPE html>
<html lang="ru">
<head>
<meta charset="utf-8">
<title>Форма регистрации</title>
</head>
<body>
<form id="registration">
  <label for="username">Имя пользователя</label>
  <input type="text" id="username" name="username" required>

  <label for="email">Электронная почта</label>
  <input type="email" id="email" name="email" required>

  <label for="password">Пароль</label>
  <input type="password" id="password" name="password" required>

  <label for="confirm_password">Подтверждение пароля</label>
  <input type="password" id="confirm_password" name="confirm_password" required>

  <label for="birthdate">Дата рождения</label>
  <input type="date" id="birthdate" name="birthdate" required>

  <label for="language_level">Уровень языка</label>
  <select id="language_level" name="language_level">
    <option value="beginner">Начальный</option>
    <option value="intermediate">Средний</option>
    <option value="advanced">Продвинутый</option>
  </select>

  <label for="promo_code">Промокод</label>
  <input type="text" id="promo_code" name="promo_code" disabled>

  <input type="submit" value="Зарегистрироваться">
</form>
<p id="password_error" style="display:none">Пароли не совпадают!</p>
<pre id="output" style="display:none"></pre>
<script>
document.getElementById('registration').addEventListener('submit', function (e) {
  e.preventDefault();
  var f = e.target;
  var mismatch = document.getElementById('password_error');
  if (f.password.value !== f.confirm_password.value) {
    mismatch.style.display = 'block';
    return;
  }
  mismatch.style.display = 'none';
  var out = document.getElementById('output');
  out.textContent = [
    'Имя пользователя: ' + f.username.value,
    'Электронная почта: ' + f.email.value,
    'Дата рождения: ' + f.birthdate.value,
    'Уровень языка: ' + f.language_level.value
  ].join('\n');
  out.style.display = 'block';
});
</script>
</body>
</html>
`
